package service

import (
	"sync"
	"testing"

	"indoor-editor/internal/editor/interaction"
	"indoor-editor/internal/editor/models"
	"indoor-editor/internal/editor/store"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_Lifecycle(t *testing.T) {
	m := NewSessionManager(store.Options{DefaultFloorIdx: models.DefaultFloorIdx}, interaction.DefaultOptions())

	w := m.Issue()
	require.NotEmpty(t, w.ID)
	assert.Equal(t, 1, m.Len())

	got, ok := m.Resolve(w.ID)
	require.True(t, ok)
	assert.Same(t, w, got)

	assert.True(t, m.Close(w.ID))
	assert.False(t, m.Close(w.ID))
	_, ok = m.Resolve(w.ID)
	assert.False(t, ok)
}

func TestSessionManager_SessionsAreIndependent(t *testing.T) {
	m := NewSessionManager(store.Options{DefaultFloorIdx: models.DefaultFloorIdx}, interaction.DefaultOptions())
	a, b := m.Issue(), m.Issue()
	require.NotEqual(t, a.ID, b.ID)

	require.NoError(t, a.Do(func(ctrl *interaction.Controller) error {
		ctrl.EnterBuilding("bldg-a", nil)
		return nil
	}))

	_ = b.Do(func(ctrl *interaction.Controller) error {
		assert.False(t, ctrl.Session().InsideBuilding())
		return nil
	})
}

func TestWorkspace_DoSerializesAccess(t *testing.T) {
	m := NewSessionManager(store.Options{DefaultFloorIdx: models.DefaultFloorIdx}, interaction.DefaultOptions())
	w := m.Issue()
	require.NoError(t, w.Do(func(ctrl *interaction.Controller) error {
		ctrl.EnterBuilding("bldg-1", nil)
		return nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = w.Do(func(ctrl *interaction.Controller) error {
				_, err := ctrl.Session().AddObject(models.Elevator, orb.Point{float64(i), 0}, models.PropsPatch{})
				return err
			})
		}(i)
	}
	wg.Wait()

	_ = w.Do(func(ctrl *interaction.Controller) error {
		assert.Len(t, ctrl.Session().CurrentObjects(), 20)
		return nil
	})
}
