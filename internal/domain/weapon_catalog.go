package domain

var (
	LockRifle = &WeaponDef{
		Name:        "Lock Rifle",
		ReloadPrice: Price{AmmoBlue, AmmoBlue},
		Modes: []FireMode{
			{
				Name: "Basic effect",
				Effects: []Effect{
					{Kind: EffectBase, Name: "Basic effect", Select: Visible, Pick: PickOne, Hit: Hit{Damage: 2, Marks: 1}},
				},
			},
			{
				Name: "With second lock",
				Cost: Price{AmmoRed},
				Effects: []Effect{
					{Kind: EffectBase, Name: "Basic effect", Select: Visible, Pick: PickOne, Hit: Hit{Damage: 2, Marks: 1}},
					{Kind: EffectOptional1, Name: "Second lock", Select: Visible, Pick: PickOne, Fresh: true, Hit: Hit{Marks: 1}},
				},
			},
		},
	}

	MachineGun = &WeaponDef{
		Name:        "Machine Gun",
		ReloadPrice: Price{AmmoBlue, AmmoRed},
		Modes: []FireMode{
			{
				Name: "Basic effect",
				Effects: []Effect{
					{Kind: EffectBase, Name: "First target", Select: Visible, Pick: PickOne, Hit: Hit{Damage: 1}},
					{Kind: EffectExtra, Name: "Second target", Select: Visible, Pick: PickOne, Fresh: true, Optional: true, Hit: Hit{Damage: 1}},
				},
			},
		},
	}

	Electroscythe = &WeaponDef{
		Name:        "Electroscythe",
		ReloadPrice: Price{AmmoBlue},
		Modes: []FireMode{
			{
				Name: "Basic mode",
				Effects: []Effect{
					{Kind: EffectBase, Name: "Basic mode", Select: SameSquare, Pick: PickAll, Hit: Hit{Damage: 1}},
				},
			},
			{
				Name: "Reaper mode",
				Cost: Price{AmmoBlue, AmmoRed},
				Effects: []Effect{
					{Kind: EffectBase, Name: "Reaper mode", Select: SameSquare, Pick: PickAll, Hit: Hit{Damage: 2}},
				},
			},
		},
	}

	Whisper = &WeaponDef{
		Name:        "Whisper",
		ReloadPrice: Price{AmmoBlue, AmmoBlue, AmmoYellow},
		Modes: []FireMode{
			{
				Name: "Effect",
				Effects: []Effect{
					{Kind: EffectBase, Name: "Effect", Select: VisibleBeyond(2), Pick: PickOne, Hit: Hit{Damage: 3, Marks: 1}},
				},
			},
		},
	}

	Heatseeker = &WeaponDef{
		Name:        "Heatseeker",
		ReloadPrice: Price{AmmoRed, AmmoRed, AmmoYellow},
		Modes: []FireMode{
			{
				Name: "Effect",
				Effects: []Effect{
					{Kind: EffectBase, Name: "Effect", Select: NotVisible, Pick: PickOne, Hit: Hit{Damage: 3}},
				},
			},
		},
	}

	Zx2 = &WeaponDef{
		Name:        "ZX-2",
		ReloadPrice: Price{AmmoYellow, AmmoRed},
		Modes: []FireMode{
			{
				Name: "Basic mode",
				Effects: []Effect{
					{Kind: EffectBase, Name: "Basic mode", Select: Visible, Pick: PickOne, Hit: Hit{Damage: 1, Marks: 2}},
				},
			},
			{
				Name: "Scanner mode",
				Effects: []Effect{
					{Kind: EffectBase, Name: "First scan", Select: Visible, Pick: PickOne, Hit: Hit{Marks: 1}},
					{Kind: EffectExtra, Name: "Second scan", Select: Visible, Pick: PickOne, Fresh: true, Optional: true, Hit: Hit{Marks: 1}},
					{Kind: EffectExtra, Name: "Third scan", Select: Visible, Pick: PickOne, Fresh: true, Optional: true, Hit: Hit{Marks: 1}},
				},
			},
		},
	}

	Shotgun = &WeaponDef{
		Name:        "Shotgun",
		ReloadPrice: Price{AmmoYellow, AmmoYellow},
		Modes: []FireMode{
			{
				Name: "Basic mode",
				Effects: []Effect{
					{Kind: EffectBase, Name: "Basic mode", Select: SameSquare, Pick: PickOne, Hit: Hit{Damage: 3}, Move: 1, Push: PushChoose},
				},
			},
			{
				Name: "Long barrel mode",
				Effects: []Effect{
					{Kind: EffectBase, Name: "Long barrel mode", Select: AtDistance(1), Pick: PickOne, Hit: Hit{Damage: 2}},
				},
			},
		},
	}

	TractorBeam = &WeaponDef{
		Name:        "Tractor Beam",
		ReloadPrice: Price{AmmoBlue},
		Targeting:   beamTargeting{},
		Modes: []FireMode{
			{
				Name: "Basic mode",
				Effects: []Effect{
					{Kind: EffectBase, Name: "Basic mode", Select: AnyOther, Pick: PickOne, Hit: Hit{Damage: 1}, Move: 2, Push: PushChoose},
				},
			},
			{
				Name: "Punisher mode",
				Cost: Price{AmmoRed, AmmoYellow},
				Effects: []Effect{
					{Kind: EffectBase, Name: "Punisher mode", Select: WithinDistance(2), Pick: PickOne, Hit: Hit{Damage: 3}, Push: PushToOwner},
				},
			},
		},
	}

	Cyberblade = &WeaponDef{
		Name:        "Cyberblade",
		ReloadPrice: Price{AmmoYellow, AmmoRed},
		Targeting:   bladeTargeting{},
		Modes: []FireMode{
			{
				Name: "Basic effect",
				Effects: []Effect{
					{Kind: EffectBase, Name: "Basic effect", Select: SameSquare, Pick: PickOne, Hit: Hit{Damage: 2}},
				},
			},
			{
				Name:     "With shadowstep",
				AnyOrder: true,
				Effects: []Effect{
					{Kind: EffectMove, Name: "Shadowstep", Move: 1},
					{Kind: EffectBase, Name: "Basic effect", Select: SameSquare, Pick: PickOne, Hit: Hit{Damage: 2}},
				},
			},
			{
				Name: "With slice and dice",
				Cost: Price{AmmoYellow},
				Effects: []Effect{
					{Kind: EffectBase, Name: "Basic effect", Select: SameSquare, Pick: PickOne, Hit: Hit{Damage: 2}},
					{Kind: EffectExtra, Name: "Slice and dice", Select: SameSquare, Pick: PickOne, Fresh: true, Hit: Hit{Damage: 2}},
				},
			},
			{
				Name:     "With shadowstep and slice and dice",
				Cost:     Price{AmmoYellow},
				AnyOrder: true,
				Effects: []Effect{
					{Kind: EffectMove, Name: "Shadowstep", Move: 1},
					{Kind: EffectBase, Name: "Basic effect", Select: SameSquare, Pick: PickOne, Hit: Hit{Damage: 2}},
					{Kind: EffectExtra, Name: "Slice and dice", Select: SameSquare, Pick: PickOne, Fresh: true, Hit: Hit{Damage: 2}},
				},
			},
		},
	}

	PlasmaGun = &WeaponDef{
		Name:        "Plasma Gun",
		ReloadPrice: Price{AmmoBlue, AmmoYellow},
		Targeting:   glideTargeting{},
		Modes: []FireMode{
			{
				Name: "Basic effect",
				Effects: []Effect{
					{Kind: EffectBase, Name: "Basic effect", Select: Visible, Pick: PickOne, Hit: Hit{Damage: 2}},
				},
			},
			{
				Name:     "With phase glide",
				AnyOrder: true,
				Effects: []Effect{
					{Kind: EffectMove, Name: "Phase glide", Move: 2},
					{Kind: EffectBase, Name: "Basic effect", Select: Visible, Pick: PickOne, Hit: Hit{Damage: 2}},
				},
			},
			{
				Name: "With charged shot",
				Cost: Price{AmmoBlue},
				Effects: []Effect{
					{Kind: EffectBase, Name: "Basic effect", Select: Visible, Pick: PickOne, Hit: Hit{Damage: 2}},
					{Kind: EffectOptional2, Name: "Charged shot", Pick: PickPrevious, AfterBase: true, Hit: Hit{Damage: 1}},
				},
			},
			{
				Name:     "With phase glide and charged shot",
				Cost:     Price{AmmoBlue},
				AnyOrder: true,
				Effects: []Effect{
					{Kind: EffectMove, Name: "Phase glide", Move: 2},
					{Kind: EffectBase, Name: "Basic effect", Select: Visible, Pick: PickOne, Hit: Hit{Damage: 2}},
					{Kind: EffectOptional2, Name: "Charged shot", Pick: PickPrevious, AfterBase: true, Hit: Hit{Damage: 1}},
				},
			},
		},
	}
)

// WeaponCatalog lists every weapon card, one copy each.
var WeaponCatalog = []*WeaponDef{
	LockRifle,
	MachineGun,
	Electroscythe,
	Whisper,
	Heatseeker,
	Zx2,
	Shotgun,
	TractorBeam,
	Cyberblade,
	PlasmaGun,
}

// WeaponByName looks a definition up by card name.
func WeaponByName(name string) (*WeaponDef, bool) {
	for _, d := range WeaponCatalog {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}
