package panel

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sameLinks reports whether two states share the same links map, i.e. the
// reduction was a reference-stable no-op.
func sameLinks(a, b State) bool {
	return reflect.ValueOf(a.Links).Pointer() == reflect.ValueOf(b.Links).Pointer()
}

// visibleIDs returns the ids of all visible links.
func visibleIDs(state State) []uint64 {
	var ids []uint64
	for id, entry := range state.Links {
		if entry.Visible {
			ids = append(ids, id)
		}
	}

	return ids
}

func initialState(t *testing.T, initial uint64, ids ...uint64) State {
	t.Helper()

	state := Reduce(State{}, Init{URLIDs: ids, InitialURLID: initial})
	require.Len(t, state.Links, len(ids))

	return state
}

func TestInit(t *testing.T) {
	state := initialState(t, 1, 1, 2, 3)

	assert.Equal(t, uint64(1), state.ActiveURLID)
	assert.Equal(t, uint64(1), state.InitialURLID)
	assert.Equal(t, LinkState{Visible: true}, state.Links[1])
	assert.Equal(t, LinkState{}, state.Links[2])
	assert.Equal(t, LinkState{}, state.Links[3])
	assert.Equal(t, []uint64{1}, visibleIDs(state))
}

func TestInitIdempotent(t *testing.T) {
	state := initialState(t, 1, 1, 2, 3)

	again := Reduce(state, Init{URLIDs: []uint64{1, 2, 3}, InitialURLID: 1})
	assert.True(t, sameLinks(state, again), "identical init must be a no-op")

	different := Reduce(state, Init{URLIDs: []uint64{1, 2}, InitialURLID: 1})
	assert.False(t, sameLinks(state, different), "changed link set must rebuild the state")
	assert.Len(t, different.Links, 2)
}

func TestSelectPreservesLoadedAcrossHideAndShow(t *testing.T) {
	state := initialState(t, 1, 1, 2)

	state = Reduce(state, Load{URLID: 1})
	state = Reduce(state, Select{URLID: 2})
	state = Reduce(state, Load{URLID: 2})
	state = Reduce(state, Select{URLID: 1})

	assert.Equal(t, uint64(1), state.ActiveURLID)
	assert.True(t, state.Links[1].Visible)
	assert.False(t, state.Links[2].Visible)
	assert.True(t, state.Links[1].Loaded, "loaded content survives hide/show")
	assert.True(t, state.Links[2].Loaded, "hidden link keeps its loaded content")
	assert.Equal(t, []uint64{1}, visibleIDs(state))
}

func TestSelectNoOps(t *testing.T) {
	state := initialState(t, 1, 1, 2)

	assert.True(t, sameLinks(state, Reduce(state, Select{URLID: 1})), "selecting the active link is a no-op")
	assert.True(t, sameLinks(state, Reduce(state, Select{URLID: 99})), "selecting an unknown link is a no-op")
}

func TestSelectClearsErrorAndRetryOfTarget(t *testing.T) {
	state := initialState(t, 1, 1, 2)

	state = Reduce(state, SetError{URLID: 2, Message: "load failed"})
	state = Reduce(state, Select{URLID: 2})

	assert.Empty(t, state.Links[2].Err)
	assert.Zero(t, state.Links[2].RetryCount)
	assert.True(t, state.Links[2].Visible)
}

func TestLoad(t *testing.T) {
	state := initialState(t, 1, 1, 2)

	loaded := Reduce(state, Load{URLID: 2})
	assert.True(t, loaded.Links[2].Loaded)

	again := Reduce(loaded, Load{URLID: 2})
	assert.True(t, sameLinks(loaded, again), "loading an already-loaded link is a no-op")

	assert.True(t, sameLinks(loaded, Reduce(loaded, Load{URLID: 99})), "loading an unknown link is a no-op")
}

func TestUnload(t *testing.T) {
	state := initialState(t, 1, 1, 2)

	state = Reduce(state, Load{URLID: 1})
	state = Reduce(state, SetError{URLID: 1, Message: "boom"})
	state = Reduce(state, Unload{URLID: 1})

	assert.Equal(t, LinkState{}, state.Links[1], "unload clears loaded, visible, error and retry count")

	again := Reduce(state, Unload{URLID: 1})
	assert.True(t, sameLinks(state, again), "unloading an unloaded link is a no-op")
}

func TestSetError(t *testing.T) {
	state := initialState(t, 1, 1, 2)

	state = Reduce(state, SetError{URLID: 2, Message: "timeout"})
	assert.Equal(t, "timeout", state.Links[2].Err)
	assert.Equal(t, 1, state.Links[2].RetryCount)

	state = Reduce(state, SetError{URLID: 2, Message: "timeout"})
	assert.Equal(t, 2, state.Links[2].RetryCount, "each error increments the retry count by exactly one")

	state = Reduce(state, SetError{URLID: 2, Message: ""})
	assert.Empty(t, state.Links[2].Err)
	assert.Zero(t, state.Links[2].RetryCount, "clearing the error resets the retry count")

	again := Reduce(state, SetError{URLID: 2, Message: ""})
	assert.True(t, sameLinks(state, again), "clearing an absent error is a no-op")
}

func TestAtMostOneVisible(t *testing.T) {
	state := initialState(t, 1, 1, 2, 3)

	actions := []Action{
		Select{URLID: 2},
		Load{URLID: 2},
		Select{URLID: 3},
		SetError{URLID: 3, Message: "boom"},
		Select{URLID: 1},
		Unload{URLID: 2},
		Select{URLID: 3},
	}

	for _, action := range actions {
		state = Reduce(state, action)
		assert.LessOrEqual(t, len(visibleIDs(state)), 1, "at most one link may be visible")
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	state := initialState(t, 1, 1, 2)

	_ = Reduce(state, Select{URLID: 2})

	assert.True(t, state.Links[1].Visible, "input state must stay untouched")
	assert.False(t, state.Links[2].Visible)
	assert.Equal(t, uint64(1), state.ActiveURLID)
}

func TestStore(t *testing.T) {
	store := NewStore()

	state := store.Dispatch(Init{URLIDs: []uint64{1, 2}, InitialURLID: 1})
	assert.Equal(t, uint64(1), state.ActiveURLID)

	state = store.Dispatch(Select{URLID: 2})
	assert.Equal(t, uint64(2), state.ActiveURLID)

	snapshot := store.Snapshot()
	snapshot.Links[2] = LinkState{} // mutating a snapshot must not leak back

	assert.True(t, store.Snapshot().Links[2].Visible)
}
