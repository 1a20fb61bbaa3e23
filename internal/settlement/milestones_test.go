package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMilestonesCrossed(t *testing.T) {
	tests := []struct {
		name        string
		preSold     int
		postSold    int
		totalSupply int
		want        []int
	}{
		{"no milestone", 10, 20, 100, nil},
		{"crosses fifty", 45, 55, 100, []int{50}},
		{"lands exactly on fifty", 49, 50, 100, []int{50}},
		{"already past fifty", 50, 60, 100, nil},
		{"one purchase crosses several", 40, 100, 100, []int{50, 75, 100}},
		{"sell out", 99, 100, 100, []int{100}},
		{"no purchase", 50, 50, 100, nil},
		{"zero supply", 0, 5, 0, nil},
		{"small supply", 1, 3, 4, []int{50, 75}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MilestonesCrossed(tt.preSold, tt.postSold, tt.totalSupply))
		})
	}
}
