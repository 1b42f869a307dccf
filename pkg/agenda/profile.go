package agenda

// DefaultName is the guest sentinel shown before the user personalizes the
// profile.
const DefaultName = "Estudante"

// Profile holds the user's display identity.
type Profile struct {
	Name     string `json:"nome"`
	PhotoURI string `json:"fotoUri,omitempty"`

	// Customized is stored but always recomputed when name or photo change:
	// customized = (name != default) OR (photo present). It governs whether
	// the personalized greeting is shown.
	Customized bool `json:"isCustomized"`
}

// DefaultProfile is the state before any user edit.
func DefaultProfile() Profile {
	return Profile{Name: DefaultName}
}

// Recompute refreshes the Customized flag from the current name and photo.
func (p *Profile) Recompute() {
	p.Customized = p.Name != DefaultName || p.PhotoURI != ""
}
