package panel

// LinkState is the lifecycle state of a single link's iframe.
type LinkState struct {
	// Loaded indicates the iframe has fetched content that is kept around
	// while the link is hidden.
	Loaded bool
	// Visible indicates the link is the one currently shown in the panel.
	Visible bool
	// Err is the last load error. Empty means none.
	Err string
	// RetryCount counts consecutive load errors since the last success.
	RetryCount int
}

// State is the full panel state.
// Treat as immutable: Reduce returns a fresh State and never mutates its input.
type State struct {
	// Links maps link id to its lifecycle state.
	Links map[uint64]LinkState
	// ActiveURLID is the id of the currently shown link. Zero means none.
	ActiveURLID uint64
	// InitialURLID is the id the panel was initialized with.
	InitialURLID uint64
}

// Action is a panel state transition request.
type Action interface {
	isAction()
}

// Init populates the state with all known links and shows the initial one.
// Dispatching Init again with identical input is a no-op.
type Init struct {
	URLIDs       []uint64
	InitialURLID uint64
}

// Select switches the shown link, hiding the previously active one without
// touching its loaded content.
type Select struct {
	URLID uint64
}

// Load marks a link's iframe content as fetched.
type Load struct {
	URLID uint64
}

// Unload discards a link's iframe content and hides it.
type Unload struct {
	URLID uint64
}

// SetError records or clears the load error of a link. A non-empty message
// increments the retry count; an empty message resets it.
type SetError struct {
	URLID   uint64
	Message string
}

func (Init) isAction()     {}
func (Select) isAction()   {}
func (Load) isAction()     {}
func (Unload) isAction()   {}
func (SetError) isAction() {}

// Reduce applies an action to a state and returns the resulting state.
// It is deterministic and side-effect free. If the action changes nothing the
// input state is returned unchanged, map reference included.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case Init:
		return reduceInit(state, a)
	case Select:
		return reduceSelect(state, a)
	case Load:
		return reduceLoad(state, a)
	case Unload:
		return reduceUnload(state, a)
	case SetError:
		return reduceSetError(state, a)
	default:
		return state
	}
}

func reduceInit(state State, a Init) State {
	if initMatches(state, a) {
		return state
	}

	links := make(map[uint64]LinkState, len(a.URLIDs))
	for _, id := range a.URLIDs {
		links[id] = LinkState{}
	}

	if entry, ok := links[a.InitialURLID]; ok {
		entry.Visible = true
		links[a.InitialURLID] = entry
	}

	return State{
		Links:        links,
		ActiveURLID:  a.InitialURLID,
		InitialURLID: a.InitialURLID,
	}
}

// initMatches reports whether the state already is the result of this Init.
func initMatches(state State, a Init) bool {
	if state.InitialURLID != a.InitialURLID || state.ActiveURLID != a.InitialURLID {
		return false
	}

	if len(state.Links) != len(a.URLIDs) {
		return false
	}

	for _, id := range a.URLIDs {
		entry, ok := state.Links[id]
		if !ok {
			return false
		}

		want := LinkState{Visible: id == a.InitialURLID}
		if entry != want {
			return false
		}
	}

	return true
}

func reduceSelect(state State, a Select) State {
	target, ok := state.Links[a.URLID]
	if !ok {
		return state
	}

	if state.ActiveURLID == a.URLID && target.Visible {
		return state
	}

	next := cloneState(state)

	if previous, exists := next.Links[state.ActiveURLID]; exists {
		// hide the previous link, its loaded content stays cached
		previous.Visible = false
		next.Links[state.ActiveURLID] = previous
	}

	target.Visible = true
	target.Err = ""
	target.RetryCount = 0
	next.Links[a.URLID] = target
	next.ActiveURLID = a.URLID

	return next
}

func reduceLoad(state State, a Load) State {
	entry, ok := state.Links[a.URLID]
	if !ok || entry.Loaded {
		return state
	}

	next := cloneState(state)

	entry.Loaded = true
	entry.Err = ""
	next.Links[a.URLID] = entry

	return next
}

func reduceUnload(state State, a Unload) State {
	entry, ok := state.Links[a.URLID]
	if !ok {
		return state
	}

	unloaded := LinkState{}
	if entry == unloaded {
		return state
	}

	next := cloneState(state)
	next.Links[a.URLID] = unloaded

	return next
}

func reduceSetError(state State, a SetError) State {
	entry, ok := state.Links[a.URLID]
	if !ok {
		return state
	}

	if a.Message == "" {
		if entry.Err == "" && entry.RetryCount == 0 {
			return state
		}

		next := cloneState(state)

		entry.Err = ""
		entry.RetryCount = 0
		next.Links[a.URLID] = entry

		return next
	}

	next := cloneState(state)

	entry.Err = a.Message
	entry.RetryCount++
	next.Links[a.URLID] = entry

	return next
}

// cloneState copies the state so the input stays untouched.
func cloneState(state State) State {
	links := make(map[uint64]LinkState, len(state.Links))
	for id, entry := range state.Links {
		links[id] = entry
	}

	state.Links = links

	return state
}
