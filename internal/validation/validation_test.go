package validation

import "testing"

func TestRegister_AllMissing(t *testing.T) {
	errs, ok := Register(map[string]string{})
	if ok {
		t.Fatalf("expected invalid")
	}
	for _, field := range []string{"name", "email", "password", "password2"} {
		if errs[field] == "" {
			t.Fatalf("expected error for %s, got none", field)
		}
	}
}

func TestRegister_Valid(t *testing.T) {
	errs, ok := Register(map[string]string{
		"name":      "John Doe",
		"email":     "john@example.com",
		"password":  "secret12",
		"password2": "secret12",
	})
	if !ok {
		t.Fatalf("expected valid, got errors: %v", errs)
	}
	if len(errs) != 0 {
		t.Fatalf("expected empty error map, got %v", errs)
	}
}

func TestRegister_FieldRules(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]string
		field  string
	}{
		{"short name", map[string]string{"name": "J", "email": "j@x.io", "password": "secret12", "password2": "secret12"}, "name"},
		{"bad email", map[string]string{"name": "John", "email": "not-an-email", "password": "secret12", "password2": "secret12"}, "email"},
		{"short password", map[string]string{"name": "John", "email": "j@x.io", "password": "abc", "password2": "abc"}, "password"},
		{"mismatch", map[string]string{"name": "John", "email": "j@x.io", "password": "secret12", "password2": "secret13"}, "password2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs, ok := Register(tc.fields)
			if ok {
				t.Fatalf("expected invalid")
			}
			if errs[tc.field] == "" {
				t.Fatalf("expected error for %s, got %v", tc.field, errs)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	if _, ok := Login(map[string]string{"email": "a@b.co", "password": "pw"}); !ok {
		t.Fatalf("expected valid")
	}
	errs, ok := Login(map[string]string{"email": "nope"})
	if ok {
		t.Fatalf("expected invalid")
	}
	if errs["email"] == "" || errs["password"] == "" {
		t.Fatalf("expected email and password errors, got %v", errs)
	}
}

func TestProfile(t *testing.T) {
	if _, ok := Profile(map[string]string{"handle": "johndoe", "status": "Developer"}); !ok {
		t.Fatalf("expected valid")
	}

	errs, ok := Profile(map[string]string{})
	if ok {
		t.Fatalf("expected invalid")
	}
	if errs["handle"] == "" || errs["status"] == "" {
		t.Fatalf("expected handle and status errors, got %v", errs)
	}

	errs, ok = Profile(map[string]string{"handle": "johndoe", "status": "Developer", "website": "not a url", "twitter": "ftp://x"})
	if ok {
		t.Fatalf("expected invalid")
	}
	if errs["website"] == "" || errs["twitter"] == "" {
		t.Fatalf("expected URL errors, got %v", errs)
	}
}

func TestExperience(t *testing.T) {
	if _, ok := Experience(map[string]string{"title": "Eng", "company": "X", "from": "2020-01-01"}); !ok {
		t.Fatalf("expected valid")
	}
	errs, ok := Experience(map[string]string{})
	if ok {
		t.Fatalf("expected invalid")
	}
	for _, field := range []string{"title", "company", "from"} {
		if errs[field] == "" {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
}

func TestEducation(t *testing.T) {
	if _, ok := Education(map[string]string{"school": "MIT", "degree": "BSc", "fieldofstudy": "CS", "from": "2016-09-01"}); !ok {
		t.Fatalf("expected valid")
	}
	errs, ok := Education(map[string]string{})
	if ok {
		t.Fatalf("expected invalid")
	}
	for _, field := range []string{"school", "degree", "fieldofstudy", "from"} {
		if errs[field] == "" {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
}
