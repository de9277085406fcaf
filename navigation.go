package main

import tea "github.com/charmbracelet/bubbletea"

func isNavigationKey(key string) bool {
	switch key {
	case "h", "j", "k", "l", "H", "J", "K", "L",
		"left", "right", "up", "down",
		"shift+left", "shift+right", "shift+up", "shift+down":
		return true
	}
	return false
}

// handleNavigation moves the keyboard cursor, which stands in for the
// mouse on terminals without mouse reporting.
func (m viewer) handleNavigation(key string, speed int) (tea.Model, tea.Cmd) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorX -= speed
	case "l", "right", "L", "shift+right":
		m.cursorX += speed
	case "k", "up", "K", "shift+up":
		m.cursorY -= speed
	case "j", "down", "J", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
	m.host.MovePointer(m.cellCenter(m.cursorX, m.cursorY))
	return m, nil
}

func (m viewer) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 4
	default:
		return 1
	}
}

func (m *viewer) ensureCursorInBounds() {
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.cols > 0 && m.cursorX >= m.cols {
		m.cursorX = m.cols - 1
	}
	if m.rows > 0 && m.cursorY >= m.rows {
		m.cursorY = m.rows - 1
	}
}

// cellCenter maps a terminal cell to surface pixels.
func (m viewer) cellCenter(col, row int) Point {
	return Point{
		X: (float64(col) + 0.5) * float64(m.scale),
		Y: (float64(row) + 0.5) * 2 * float64(m.scale),
	}
}
