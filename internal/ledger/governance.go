package ledger

// MergeConfig applies a candidate configuration submitted by sender. The
// owner replaces everything. The chief pausing officer may only change who
// the officer is and whether deposits are paused; the rest of the candidate
// is dropped. Anyone else is rejected.
func MergeConfig(current Config, sender Addr, candidate Config) (Config, error) {
	switch sender {
	case current.Owner:
		return candidate, nil
	case current.ChiefPausingOfficer:
		merged := current
		merged.ChiefPausingOfficer = candidate.ChiefPausingOfficer
		merged.Paused = candidate.Paused
		return merged, nil
	default:
		return Config{}, ErrUnauthorized
	}
}
