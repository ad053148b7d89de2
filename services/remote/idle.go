package remote

// IdleMonitor forces power off after a period with no user-driven broadcast.
type IdleMonitor struct {
	TimeoutMs int64
}

// Check powers s off when it has been idle for at least TimeoutMs and reports
// whether it did. Nothing is transmitted.
func (m IdleMonitor) Check(s *State, now int64) bool {
	if !s.Powered || now-s.Activity < m.TimeoutMs {
		return false
	}
	s.Powered = false
	return true
}
