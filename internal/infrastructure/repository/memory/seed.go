package memory

import (
	"github.com/courtside/league-night/internal/domain/player"
)

// SeedPlayers is the default development roster. Production deployments
// point the roster repository at the membership database instead.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "pl-ava", DisplayName: "Ava Reyes", Skill: player.SkillAdvanced},
		{ID: "pl-ben", DisplayName: "Ben Okafor", Skill: player.SkillIntermediate},
		{ID: "pl-cora", DisplayName: "Cora Lindqvist", Skill: player.SkillAdvanced},
		{ID: "pl-dex", DisplayName: "Dex Tanaka", Skill: player.SkillBeginner},
		{ID: "pl-elle", DisplayName: "Elle Moreau", Skill: player.SkillIntermediate},
		{ID: "pl-finn", DisplayName: "Finn Gallagher", Skill: player.SkillIntermediate},
		{ID: "pl-gia", DisplayName: "Gia Castellanos", Skill: player.SkillAdvanced},
		{ID: "pl-hugo", DisplayName: "Hugo Brandt", Skill: player.SkillBeginner},
		{ID: "pl-ines", DisplayName: "Ines Okada", Skill: player.SkillIntermediate},
		{ID: "pl-jonas", DisplayName: "Jonas Petrov", Skill: player.SkillIntermediate},
		{ID: "pl-kira", DisplayName: "Kira Vance", Skill: player.SkillAdvanced},
		{ID: "pl-luca", DisplayName: "Luca Ferreira", Skill: player.SkillBeginner},
	}
}
