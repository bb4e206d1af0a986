package service

import "testing"

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		name       string
		totalXP    int64
		wantLevel  int
		wantToNext int64
	}{
		{"zero xp", 0, 1, 100},
		{"mid level one", 75, 1, 25},
		{"one below level two", 99, 1, 1},
		{"exactly level two", 100, 2, 200},
		{"one below level three", 299, 2, 1},
		{"exactly level three", 300, 3, 300},
		{"one below level four", 599, 3, 1},
		{"exactly level four", 600, 4, 400},
		{"negative clamps to zero", -50, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, toNext := LevelForXP(tt.totalXP)
			if level != tt.wantLevel {
				t.Errorf("LevelForXP(%d) level = %d, want %d", tt.totalXP, level, tt.wantLevel)
			}
			if toNext != tt.wantToNext {
				t.Errorf("LevelForXP(%d) toNext = %d, want %d", tt.totalXP, toNext, tt.wantToNext)
			}
		})
	}
}

func TestLevelForXP_Monotonic(t *testing.T) {
	prevLevel := 0
	for xp := int64(0); xp <= 2000; xp += 50 {
		level, _ := LevelForXP(xp)
		if level < prevLevel {
			t.Fatalf("level decreased at xp=%d: %d -> %d", xp, prevLevel, level)
		}
		prevLevel = level
	}
}
