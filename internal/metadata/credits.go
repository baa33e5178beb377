package metadata

// MergeCredits combines credit lists in order. Credits sharing a Key merge
// attribute by attribute: a later non-empty person or role spelling and a
// later non-nil Primary win. First-seen order is kept.
func MergeCredits(lists ...[]Credit) []Credit {
	index := map[string]int{}
	var out []Credit
	for _, list := range lists {
		for _, c := range list {
			if c.Person == "" {
				continue
			}
			key := c.Key()
			i, ok := index[key]
			if !ok {
				index[key] = len(out)
				if c.Primary != nil {
					c.Primary = BoolPtr(*c.Primary)
				}
				out = append(out, c)
				continue
			}
			prev := &out[i]
			prev.Person = c.Person
			if c.Role != "" {
				prev.Role = c.Role
			}
			if c.Primary != nil {
				prev.Primary = BoolPtr(*c.Primary)
			}
		}
	}
	return out
}
