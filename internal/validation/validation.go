package validation

import (
	"net/url"
	"regexp"
	"strings"
)

// Errors maps a form field name to a human-readable message.
type Errors map[string]string

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minPasswordLen = 6
	maxPasswordLen = 30
	minHandleLen   = 2
	maxHandleLen   = 40
	minNameLen     = 2
	maxNameLen     = 30
)

// Register validates a registration form. Fields: name, email, password, password2.
func Register(fields map[string]string) (Errors, bool) {
	errs := Errors{}

	name := strings.TrimSpace(fields["name"])
	switch {
	case name == "":
		errs["name"] = "Name field is required"
	case len(name) < minNameLen || len(name) > maxNameLen:
		errs["name"] = "Name must be between 2 and 30 characters"
	}

	checkEmail(errs, fields["email"])

	password := fields["password"]
	password2 := fields["password2"]
	switch {
	case password == "":
		errs["password"] = "Password field is required"
	case len(password) < minPasswordLen || len(password) > maxPasswordLen:
		errs["password"] = "Password must be between 6 and 30 characters"
	}
	switch {
	case password2 == "":
		errs["password2"] = "Confirm Password field is required"
	case password != "" && password != password2:
		errs["password2"] = "Passwords must match"
	}

	return errs, len(errs) == 0
}

// Login validates a login form. Fields: email, password.
func Login(fields map[string]string) (Errors, bool) {
	errs := Errors{}

	checkEmail(errs, fields["email"])

	if fields["password"] == "" {
		errs["password"] = "Password field is required"
	}

	return errs, len(errs) == 0
}

// Profile validates a profile form. Fields: handle, status, plus the optional
// website and social link URLs.
func Profile(fields map[string]string) (Errors, bool) {
	errs := Errors{}

	handle := strings.TrimSpace(fields["handle"])
	switch {
	case handle == "":
		errs["handle"] = "Profile handle is required"
	case len(handle) < minHandleLen || len(handle) > maxHandleLen:
		errs["handle"] = "Handle needs to be between 2 and 40 characters"
	}

	if strings.TrimSpace(fields["status"]) == "" {
		errs["status"] = "Status field is required"
	}

	for _, field := range []string{"website", "youtube", "twitter", "facebook", "linkedin", "instagram"} {
		if v := strings.TrimSpace(fields[field]); v != "" && !isValidURL(v) {
			errs[field] = "Not a valid URL"
		}
	}

	return errs, len(errs) == 0
}

// Experience validates an experience form. Fields: title, company, from.
func Experience(fields map[string]string) (Errors, bool) {
	errs := Errors{}

	if strings.TrimSpace(fields["title"]) == "" {
		errs["title"] = "Job title field is required"
	}
	if strings.TrimSpace(fields["company"]) == "" {
		errs["company"] = "Company field is required"
	}
	if strings.TrimSpace(fields["from"]) == "" {
		errs["from"] = "From date field is required"
	}

	return errs, len(errs) == 0
}

// Education validates an education form. Fields: school, degree, fieldofstudy, from.
func Education(fields map[string]string) (Errors, bool) {
	errs := Errors{}

	if strings.TrimSpace(fields["school"]) == "" {
		errs["school"] = "School field is required"
	}
	if strings.TrimSpace(fields["degree"]) == "" {
		errs["degree"] = "Degree field is required"
	}
	if strings.TrimSpace(fields["fieldofstudy"]) == "" {
		errs["fieldofstudy"] = "Field of study field is required"
	}
	if strings.TrimSpace(fields["from"]) == "" {
		errs["from"] = "From date field is required"
	}

	return errs, len(errs) == 0
}

func checkEmail(errs Errors, email string) {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		errs["email"] = "Email field is required"
	case !emailPattern.MatchString(email):
		errs["email"] = "Email is invalid"
	}
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}
