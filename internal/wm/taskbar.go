package wm

// TaskbarEntry is one clickable chip for a minimized window. Entries are a
// projection of window state: the minimize/restore/close paths are the only
// writers, so the entry set always mirrors the minimized windows exactly.
type TaskbarEntry struct {
	ID    ID
	Title string
}

// TaskbarEntries returns the current taskbar projection, oldest minimize
// first. The returned slice is a copy.
func (m *Manager) TaskbarEntries() []TaskbarEntry {
	entries := make([]TaskbarEntry, len(m.taskbar))
	copy(entries, m.taskbar)
	return entries
}

// RestoreFromTaskbar restores a minimized window and focuses it, the
// behavior of clicking its taskbar chip. No-op for unknown ids.
func (m *Manager) RestoreFromTaskbar(id ID) {
	m.RestoreWindow(id)
}

func (m *Manager) addTaskbarEntry(w *Window) {
	for _, e := range m.taskbar {
		if e.ID == w.id {
			return
		}
	}
	m.taskbar = append(m.taskbar, TaskbarEntry{ID: w.id, Title: w.title})
}

func (m *Manager) removeTaskbarEntry(id ID) {
	for i, e := range m.taskbar {
		if e.ID == id {
			m.taskbar = append(m.taskbar[:i], m.taskbar[i+1:]...)
			return
		}
	}
}
