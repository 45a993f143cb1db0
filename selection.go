package snapsearch

// SelectionView is the part of the host page the selection controller
// drives.
type SelectionView interface {
	// SetActive adds or removes the active marker on a card.
	SetActive(id string, active bool)

	// ShowDetail renders r into the detail container. Implementations
	// without a detail container do nothing.
	ShowDetail(r ListingRecord)
}

// Interaction is one user interaction delivered by the host page's single
// delegated listener.
type Interaction struct {
	// CardID identifies the card the interaction landed in; empty when it
	// landed outside any card (e.g. in the detail pane).
	CardID string

	// OnLink is set when the interaction landed on an embedded hyperlink.
	OnLink bool
}

// SelectionOutcome reports what HandleInteraction did.
type SelectionOutcome struct {
	// Changed is set when a different card became active.
	Changed bool

	// PreventDefault tells the host to suppress default navigation.
	PreventDefault bool

	Previous string
	Active   string
}

// SelectionController tracks which result card is active. States are
// "no selection" and "selected(id)"; selecting the active card again is a
// no-op, not a toggle. The active ID always refers to a record of the
// session.
type SelectionController struct {
	session *SearchSession
	view    SelectionView
	active  string
}

// NewSelectionController returns a controller with no selection.
// view may be nil.
func NewSelectionController(session *SearchSession, view SelectionView) *SelectionController {
	return &SelectionController{session: session, view: view}
}

// Active returns the active record ID, if any.
func (c *SelectionController) Active() (string, bool) {
	return c.active, c.active != ""
}

// HandleInteraction is the single entry point for interaction events.
func (c *SelectionController) HandleInteraction(in Interaction) SelectionOutcome {
	out := SelectionOutcome{
		PreventDefault: in.OnLink,
		Previous:       c.active,
		Active:         c.active,
	}

	if in.CardID == "" || in.CardID == c.active {
		return out
	}
	rec, ok := c.session.Record(in.CardID)
	if !ok {
		return out
	}

	if c.view != nil {
		if c.active != "" {
			c.view.SetActive(c.active, false)
		}
		c.view.SetActive(rec.ID, true)
		c.view.ShowDetail(rec)
	}
	c.active = rec.ID

	out.Changed = true
	out.Active = rec.ID
	return out
}

// ActivateFirst selects the first result as if the user had clicked it.
func (c *SelectionController) ActivateFirst() SelectionOutcome {
	if c.session.Empty() {
		return SelectionOutcome{Previous: c.active, Active: c.active}
	}
	return c.HandleInteraction(Interaction{CardID: c.session.results[0].ID})
}
