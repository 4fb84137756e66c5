package game

import "fmt"

// HumanName is the display name of the human seat
const HumanName = "You"

var npcNames = []string{"Bigode", "Careca", "Tonho", "Cida", "Zeca", "Nego Dito", "Lurdinha"}

// NPCNames returns n distinct NPC names, numbering them past the built-in list
func NPCNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		if i < len(npcNames) {
			names[i] = npcNames[i]
		} else {
			names[i] = fmt.Sprintf("NPC %d", i+1)
		}
	}
	return names
}

// ClampInt forces v into [lo, hi]
func ClampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
