package osu

import (
	"github.com/osukit/diffcalc/app/beatmap/difficulty"
	"github.com/osukit/diffcalc/app/rulesets/osu/preprocessing"
	"github.com/osukit/diffcalc/app/rulesets/osu/skills"
)

type SkillsProcessor struct {
	Aim               *skills.AimSkill
	AimWithoutSliders *skills.AimSkill
	Speed             *skills.SpeedSkill
	Flashlight        *skills.Flashlight
}

func NewSkillsProcessor(d *difficulty.Difficulty) *SkillsProcessor {
	return &SkillsProcessor{
		Aim:               skills.NewAimSkill(d, true),
		AimWithoutSliders: skills.NewAimSkill(d, false),
		Speed:             skills.NewSpeedSkill(d),
		Flashlight:        skills.NewFlashlightSkill(d),
	}
}

func (proc *SkillsProcessor) Process(current *preprocessing.DifficultyObject) {
	proc.Aim.Process(current)
	proc.AimWithoutSliders.Process(current)
	proc.Speed.Process(current)
	proc.Flashlight.Process(current)
}
