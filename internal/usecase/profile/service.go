package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"devconnect/internal/domain/profile"
)

var (
	ErrNoProfile    = errors.New("no profile for this user")
	ErrNoProfiles   = errors.New("no profiles")
	ErrHandleTaken  = errors.New("handle already exists")
	ErrNoExperience = errors.New("no experience with this id")
	ErrNoEducation  = errors.New("no education with this id")
	ErrInternal     = errors.New("internal error")
)

// UpsertInput carries the raw profile form. Empty fields are absent: on update
// only non-empty fields overwrite what is stored.
type UpsertInput struct {
	Handle         string
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GithubUsername string
	Skills         string

	Youtube   string
	Twitter   string
	Facebook  string
	Linkedin  string
	Instagram string
}

type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        string
	To          string
	Current     bool
	Description string
}

type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      bool
	Description  string
}

type ProfileUsecase interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	GetByHandle(ctx context.Context, handle string) (profile.Profile, error)
	ListAll(ctx context.Context) ([]profile.Profile, error)
	Upsert(ctx context.Context, userID uuid.UUID, in UpsertInput) (profile.Profile, error)
	AddExperience(ctx context.Context, userID uuid.UUID, in ExperienceInput) (profile.Profile, error)
	RemoveExperience(ctx context.Context, userID uuid.UUID, entryID string) (profile.Profile, error)
	AddEducation(ctx context.Context, userID uuid.UUID, in EducationInput) (profile.Profile, error)
	RemoveEducation(ctx context.Context, userID uuid.UUID, entryID string) (profile.Profile, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// Cache is the read-through cache for public profile lookups. A nil Cache
// disables caching.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

const (
	cacheKeyAll          = "profiles:all"
	cacheKeyHandlePrefix = "profiles:handle:"
	cacheKeyUserPrefix   = "profiles:user:"
)

type Service struct {
	profiles profile.Repository
	cache    Cache
}

func NewService(profiles profile.Repository, cache Cache) *Service {
	return &Service{profiles: profiles, cache: cache}
}

func (s *Service) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	key := cacheKeyUserPrefix + userID.String()
	if s.cache != nil {
		var cached profile.Profile
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrNoProfile
		}
		return profile.Profile{}, ErrInternal
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, p, 0)
	}
	return p, nil
}

func (s *Service) GetByHandle(ctx context.Context, handle string) (profile.Profile, error) {
	handle = strings.TrimSpace(handle)
	key := cacheKeyHandlePrefix + handle
	if s.cache != nil {
		var cached profile.Profile
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	p, err := s.profiles.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrNoProfile
		}
		return profile.Profile{}, ErrInternal
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, p, 0)
	}
	return p, nil
}

func (s *Service) ListAll(ctx context.Context) ([]profile.Profile, error) {
	if s.cache != nil {
		var cached []profile.Profile
		if ok, err := s.cache.GetJSON(ctx, cacheKeyAll, &cached); err == nil && ok && len(cached) > 0 {
			return cached, nil
		}
	}

	list, err := s.profiles.ListAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	if len(list) == 0 {
		return nil, ErrNoProfiles
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cacheKeyAll, list, 0)
	}
	return list, nil
}

// Upsert creates the profile on first use and applies a field-level merge on
// every call after that.
func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, in UpsertInput) (profile.Profile, error) {
	existing, err := s.profiles.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		merged := mergeProfile(existing, in)
		if err := s.profiles.Update(ctx, merged); err != nil {
			if errors.Is(err, profile.ErrDuplicateHandle) {
				return profile.Profile{}, ErrHandleTaken
			}
			return profile.Profile{}, ErrInternal
		}
	case errors.Is(err, profile.ErrNotFound):
		// Handle lookup first, then create. The unique constraint on
		// handle backstops this two-step sequence under concurrency.
		if _, err := s.profiles.GetByHandle(ctx, strings.TrimSpace(in.Handle)); err == nil {
			return profile.Profile{}, ErrHandleTaken
		} else if !errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrInternal
		}

		created := mergeProfile(profile.Profile{ID: uuid.New(), UserID: userID}, in)
		if err := s.profiles.Create(ctx, created); err != nil {
			if errors.Is(err, profile.ErrDuplicateHandle) {
				return profile.Profile{}, ErrHandleTaken
			}
			return profile.Profile{}, ErrInternal
		}
	default:
		return profile.Profile{}, ErrInternal
	}

	s.invalidate(ctx, userID)

	updated, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, ErrInternal
	}
	return updated, nil
}

func (s *Service) AddExperience(ctx context.Context, userID uuid.UUID, in ExperienceInput) (profile.Profile, error) {
	return s.mutate(ctx, userID, func(p *profile.Profile) error {
		entry := profile.Experience{
			ID:          uuid.NewString(),
			Title:       strings.TrimSpace(in.Title),
			Company:     strings.TrimSpace(in.Company),
			Location:    strings.TrimSpace(in.Location),
			From:        strings.TrimSpace(in.From),
			To:          strings.TrimSpace(in.To),
			Current:     in.Current,
			Description: strings.TrimSpace(in.Description),
		}
		p.Experience = append([]profile.Experience{entry}, p.Experience...)
		return nil
	})
}

func (s *Service) RemoveExperience(ctx context.Context, userID uuid.UUID, entryID string) (profile.Profile, error) {
	return s.mutate(ctx, userID, func(p *profile.Profile) error {
		idx := -1
		for i, e := range p.Experience {
			if e.ID == entryID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNoExperience
		}
		p.Experience = append(p.Experience[:idx], p.Experience[idx+1:]...)
		return nil
	})
}

func (s *Service) AddEducation(ctx context.Context, userID uuid.UUID, in EducationInput) (profile.Profile, error) {
	return s.mutate(ctx, userID, func(p *profile.Profile) error {
		entry := profile.Education{
			ID:           uuid.NewString(),
			School:       strings.TrimSpace(in.School),
			Degree:       strings.TrimSpace(in.Degree),
			FieldOfStudy: strings.TrimSpace(in.FieldOfStudy),
			From:         strings.TrimSpace(in.From),
			To:           strings.TrimSpace(in.To),
			Current:      in.Current,
			Description:  strings.TrimSpace(in.Description),
		}
		p.Education = append([]profile.Education{entry}, p.Education...)
		return nil
	})
}

func (s *Service) RemoveEducation(ctx context.Context, userID uuid.UUID, entryID string) (profile.Profile, error) {
	return s.mutate(ctx, userID, func(p *profile.Profile) error {
		idx := -1
		for i, e := range p.Education {
			if e.ID == entryID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNoEducation
		}
		p.Education = append(p.Education[:idx], p.Education[idx+1:]...)
		return nil
	})
}

// Delete removes the profile and the owning user together.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.profiles.DeleteWithOwner(ctx, userID); err != nil {
		return ErrInternal
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *Service) mutate(ctx context.Context, userID uuid.UUID, apply func(*profile.Profile) error) (profile.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.Profile{}, ErrNoProfile
		}
		return profile.Profile{}, ErrInternal
	}

	if err := apply(&p); err != nil {
		return profile.Profile{}, err
	}

	if err := s.profiles.Update(ctx, p); err != nil {
		return profile.Profile{}, ErrInternal
	}

	s.invalidate(ctx, userID)
	return p, nil
}

// invalidate drops the cached list and the owner's entry by exact key. Handle
// keys go by pattern since a mutation may have changed the handle and the old
// key is no longer known.
func (s *Service) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, cacheKeyAll)
	_ = s.cache.Delete(ctx, cacheKeyUserPrefix+userID.String())
	_ = s.cache.DeleteByPattern(ctx, cacheKeyHandlePrefix+"*")
}

func mergeProfile(p profile.Profile, in UpsertInput) profile.Profile {
	setIfPresent(&p.Handle, in.Handle)
	setIfPresent(&p.Company, in.Company)
	setIfPresent(&p.Website, in.Website)
	setIfPresent(&p.Location, in.Location)
	setIfPresent(&p.Bio, in.Bio)
	setIfPresent(&p.Status, in.Status)
	setIfPresent(&p.GithubUsername, in.GithubUsername)

	if strings.TrimSpace(in.Skills) != "" {
		p.Skills = splitSkills(in.Skills)
	}

	setIfPresent(&p.Social.Youtube, in.Youtube)
	setIfPresent(&p.Social.Twitter, in.Twitter)
	setIfPresent(&p.Social.Facebook, in.Facebook)
	setIfPresent(&p.Social.Linkedin, in.Linkedin)
	setIfPresent(&p.Social.Instagram, in.Instagram)

	return p
}

func setIfPresent(dst *string, v string) {
	v = strings.TrimSpace(v)
	if v != "" {
		*dst = v
	}
}

func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
