package settlement

// Sale milestones that trigger an organizer notification, in percent sold.
var saleMilestones = []int{50, 75, 100}

// MilestonesCrossed returns the milestones passed between the pre- and
// post-purchase sold counts. A milestone fires exactly once: only when the
// pre ratio was below it and the post ratio reaches it.
func MilestonesCrossed(preSold, postSold, totalSupply int) []int {
	if totalSupply <= 0 || postSold <= preSold {
		return nil
	}

	prePct := preSold * 100 / totalSupply
	postPct := postSold * 100 / totalSupply

	var crossed []int
	for _, m := range saleMilestones {
		if prePct < m && postPct >= m {
			crossed = append(crossed, m)
		}
	}
	return crossed
}
