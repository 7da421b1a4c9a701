package player

import "fmt"

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// Player is a league member as published by the surrounding membership
// system. The orchestration core reads this roster but never mutates it.
type Player struct {
	ID          string
	DisplayName string
	Skill       SkillLevel
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.DisplayName == "" {
		return fmt.Errorf("player display name is required")
	}

	return nil
}
