// Package semantics describes components for assistive technology. Each
// component fills a SemanticsConfiguration; emitting a platform tree from
// it is the host's job.
package semantics

import "strings"

// SemanticsConfiguration describes semantic properties and actions for a
// component.
type SemanticsConfiguration struct {
	// IsSemanticBoundary indicates this node creates a separate semantic node
	// rather than merging with its ancestors.
	IsSemanticBoundary bool

	// IsMergingSemanticsOfDescendants indicates this node merges the semantics
	// of its descendants into itself.
	IsMergingSemanticsOfDescendants bool

	// IsBlockingUserActions indicates the node blocks user actions (e.g., modal overlay).
	IsBlockingUserActions bool

	// Properties contains semantic property values.
	Properties SemanticsProperties

	// Actions contains action handlers.
	Actions *SemanticsActions
}

// IsEmpty reports whether the configuration contains any semantic information.
func (c SemanticsConfiguration) IsEmpty() bool {
	return !c.IsSemanticBoundary &&
		!c.IsMergingSemanticsOfDescendants &&
		!c.IsBlockingUserActions &&
		c.Properties.IsEmpty() &&
		(c.Actions == nil || c.Actions.IsEmpty())
}

// EnsureFocusable marks the configuration as focusable when it has meaningful content.
func (c *SemanticsConfiguration) EnsureFocusable() {
	if c == nil {
		return
	}
	if c.Properties.Flags.Has(SemanticsIsHidden) {
		return
	}
	if c.Properties.Flags.Has(SemanticsIsFocusable) {
		return
	}
	if !c.Properties.IsEmpty() || (c.Actions != nil && !c.Actions.IsEmpty()) {
		c.Properties.Flags = c.Properties.Flags.Set(SemanticsIsFocusable)
	}
}

// Merge combines another configuration into this one.
func (c *SemanticsConfiguration) Merge(other SemanticsConfiguration) {
	c.IsSemanticBoundary = c.IsSemanticBoundary || other.IsSemanticBoundary
	c.IsMergingSemanticsOfDescendants = c.IsMergingSemanticsOfDescendants || other.IsMergingSemanticsOfDescendants
	c.IsBlockingUserActions = c.IsBlockingUserActions || other.IsBlockingUserActions
	c.Properties = c.Properties.Merge(other.Properties)
	if other.Actions != nil {
		if c.Actions == nil {
			c.Actions = NewSemanticsActions()
		}
		c.Actions.Merge(other.Actions)
	}
}

// String summarizes the configuration, e.g. `checkbox "Subscribe" [checked enabled] {tap}`.
func (c SemanticsConfiguration) String() string {
	var sb strings.Builder
	sb.WriteString(c.Properties.Role.String())
	if c.Properties.Label != "" {
		sb.WriteString(" \"" + c.Properties.Label + "\"")
	}
	if c.Properties.Value != "" {
		sb.WriteString(" =" + c.Properties.Value)
	}
	if c.Properties.Flags != 0 {
		sb.WriteString(" [" + c.Properties.Flags.String() + "]")
	}
	if c.Actions != nil && !c.Actions.IsEmpty() {
		sb.WriteString(" {" + c.Actions.Supported().String() + "}")
	}
	return sb.String()
}

// Describer is implemented by components that expose semantics.
type Describer interface {
	// DescribeSemanticsConfiguration fills config and reports whether the
	// component contributes anything.
	DescribeSemanticsConfiguration(config *SemanticsConfiguration) bool
}

// Describe returns d's configuration, or an empty one.
func Describe(d Describer) SemanticsConfiguration {
	var config SemanticsConfiguration
	if d == nil || !d.DescribeSemanticsConfiguration(&config) {
		return SemanticsConfiguration{}
	}
	return config
}
