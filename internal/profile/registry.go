package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

var (
	// ErrNotFound is returned when a named profile is not registered.
	ErrNotFound = errors.New("profile not found")
	// ErrDefaultProfile is returned when removing the built-in profile.
	ErrDefaultProfile = errors.New("cannot remove the default profile")
	// ErrProfileActive is returned when removing the currently active profile.
	ErrProfileActive = errors.New("cannot remove the active profile")
)

// Registry holds the set of known resolution profiles and tracks which one
// is active. The default profile is always present. A Registry is intended
// to be configured once at startup and treated as read-only afterwards.
type Registry struct {
	profiles map[string]*Profile
	order    []string // insertion order, used for deterministic tie-breaking
	active   string
}

// NewRegistry creates a registry containing the default profile, active.
func NewRegistry() *Registry {
	def := Default()
	return &Registry{
		profiles: map[string]*Profile{def.Name: def},
		order:    []string{def.Name},
		active:   def.Name,
	}
}

// Add registers a profile, replacing any existing profile of the same name.
func (r *Registry) Add(p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, exists := r.profiles[p.Name]; !exists {
		r.order = append(r.order, p.Name)
	}
	r.profiles[p.Name] = p
	return nil
}

// Remove deletes a profile. The default profile and the active profile
// cannot be removed.
func (r *Registry) Remove(name string) error {
	if name == DefaultName {
		return ErrDefaultProfile
	}
	if name == r.active {
		return ErrProfileActive
	}
	if _, ok := r.profiles[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(r.profiles, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the named profile.
func (r *Registry) Get(name string) (*Profile, error) {
	p, ok := r.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return p, nil
}

// Names returns profile names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Active returns the currently active profile.
func (r *Registry) Active() *Profile {
	return r.profiles[r.active]
}

// SetActive switches the active profile by name.
func (r *Registry) SetActive(name string) error {
	if _, ok := r.profiles[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	r.active = name
	return nil
}

// AutoSelect picks the registered profile whose reference aspect ratio is
// closest to the given image dimensions, makes it active and returns its
// name. Ties go to the earliest-registered profile. This never fails: the
// default profile is always a candidate.
func (r *Registry) AutoSelect(imageWidth, imageHeight int) string {
	imageRatio := float64(imageWidth) / float64(imageHeight)

	best := DefaultName
	bestDiff := math.Inf(1)
	for _, name := range r.order {
		diff := math.Abs(imageRatio - r.profiles[name].AspectRatio())
		if diff < bestDiff {
			bestDiff = diff
			best = name
		}
	}
	r.active = best
	return best
}

// fileFormat is the on-disk JSON layout for a profile set.
type fileFormat struct {
	ActiveProfile string     `json:"active_profile,omitempty"`
	Profiles      []*Profile `json:"profiles"`
}

// LoadFile merges profiles from a JSON file into the registry. If the file
// names an active profile that is present, it becomes active.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profiles: %w", err)
	}

	var ff fileFormat
	if err := json.Unmarshal(data, &ff); err != nil {
		return fmt.Errorf("parse profiles %s: %w", path, err)
	}

	for _, p := range ff.Profiles {
		if err := r.Add(p); err != nil {
			return fmt.Errorf("profile file %s: %w", path, err)
		}
	}
	if ff.ActiveProfile != "" {
		if _, ok := r.profiles[ff.ActiveProfile]; ok {
			r.active = ff.ActiveProfile
		}
	}
	return nil
}

// SaveFile writes all registered profiles and the active selection to a
// JSON file, creating parent directories as needed.
func (r *Registry) SaveFile(path string) error {
	ff := fileFormat{ActiveProfile: r.active}
	for _, name := range r.order {
		ff.Profiles = append(ff.Profiles, r.profiles[name])
	}

	data, err := json.MarshalIndent(ff, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profiles: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create profile dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}
