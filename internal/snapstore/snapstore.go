// Package snapstore persists widget snapshots and the report run log.
package snapstore

import (
	"sync"

	"github.com/tpsops/tpsreport/internal/contract"
)

// StoreManager manages the snapshot and run log store instances.
type StoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	snapshots    contract.SnapshotStore
	runlog       contract.RunLogStore
}

var _ contract.SnapshotManager = &StoreManager{} // Compile-time check

// GetSnapshotStore returns the widget snapshot store.
func (mgr *StoreManager) GetSnapshotStore() contract.SnapshotStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.snapshots
}

// GetRunLog returns the report run log store.
func (mgr *StoreManager) GetRunLog() contract.RunLogStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runlog
}
