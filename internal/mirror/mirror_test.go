package mirror

import (
	"sync"
	"testing"

	"wordquest/internal/models"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()

	if got := store.Get(1); got != nil {
		t.Errorf("Get on empty store = %+v, want nil", got)
	}

	session := &models.GameSession{GameID: 7, Words: []string{"Python", "Docker"}}
	store.Put(1, session)

	if got := store.Get(1); got != session {
		t.Errorf("Get returned %+v, want the stored session", got)
	}
	if got := store.Get(2); got != nil {
		t.Errorf("Get for other user = %+v, want nil", got)
	}

	replacement := &models.GameSession{GameID: 8}
	store.Put(1, replacement)
	if got := store.Get(1); got != replacement {
		t.Error("Put did not replace the existing session")
	}

	store.Delete(1)
	if got := store.Get(1); got != nil {
		t.Errorf("Get after Delete = %+v, want nil", got)
	}

	// Deleting an absent entry is a no-op
	store.Delete(99)
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			store.Put(id, &models.GameSession{GameID: id})
			store.Get(id)
			store.Delete(id)
		}(int64(i))
	}
	wg.Wait()

	for i := int64(0); i < 50; i++ {
		if store.Get(i) != nil {
			t.Fatalf("Session for user %d survived delete", i)
		}
	}
}
