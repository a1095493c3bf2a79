package catalog

func defaultItems() map[string]*Item {
	items := []*Item{
		{
			ID:          "militaryOrder",
			Name:        "军令状",
			Category:    ItemPlot,
			Description: "白绢黑字，森然可畏。其上书明：限三日内交箭十万，如违期限，甘当军法。孔明亲手所书，印上朱泥。",
			Effect:      ItemEffect{Type: ItemEffectSpecial, Description: "纯剧情道具，无实际作用"},
			Trigger:     ItemTrigger{AfterEvent: "dialogue_event2"},
		},
		{
			ID:          "dongwuTiger",
			Name:        "东吴虎符",
			Category:    ItemPlot,
			Description: "青铜铸就，虎首威严。此乃调兵遣将之信物，持此符者可调动东吴船只。鲁肃郑重相交，切记勿让公瑾知晓。",
			Effect: ItemEffect{
				Type:        ItemEffectSpecial,
				Target:      "boatAuthorization",
				Description: "在对话中使用可获得鲁肃的船只调用授权，第三章遇巡江盘查时凭此通过",
			},
			Trigger: ItemTrigger{AfterSuccess: "check_event1"},
		},
		{
			ID:          "kongMingFan",
			Name:        "孔明羽扇",
			Category:    ItemCheck,
			Description: "鹅毛为骨，素绢为面。轻摇生风，静握蕴智。孔明常持此扇，运筹帷幄，决胜千里。",
			Effect:      ItemEffect{Type: ItemEffectCheckBonus, Target: "eloquence", Value: 10},
			Trigger:     ItemTrigger{InitialCarry: true},
		},
		{
			ID:          "sima",
			Name:        "司南",
			Category:    ItemCheck,
			Description: "磁石制成，指向分明。古人观天察地之器，能辨方位，识阴阳。孔明观星时所得，蕴含天机奥秘。",
			Effect:      ItemEffect{Type: ItemEffectCheckBonus, Target: "intelligence", Value: 20},
			Trigger:     ItemTrigger{AfterEvent: "dialogue_event4"},
		},
		{
			ID:          "grassman",
			Name:        "草人",
			Category:    ItemCheck,
			Consumable:  true,
			Description: "稻草扎制，形如真人。披甲戴盔，手执刀枪。虽是草料所成，却能惑敌视听，引箭入彀。用后即毁。",
			Effect: ItemEffect{
				Type: ItemEffectMultiple,
				Effects: []ItemEffect{
					{Type: ItemEffectCheckBonus, Target: "intelligence", Value: 30},
					{Type: ItemEffectSpecial, Target: "arrowEfficiencyMultiplier", Value: 2},
				},
			},
			Trigger: ItemTrigger{AfterSuccess: "check_event3"},
		},
		{
			ID:          "warDrum",
			Name:        "战鼓",
			Category:    ItemCheck,
			Description: "牛皮蒙面，铜环镶边。鼓声如雷，震慑敌胆。军中必备之器，能鼓舞士气，协调进退。",
			Effect: ItemEffect{
				Type: ItemEffectMultiple,
				Effects: []ItemEffect{
					{Type: ItemEffectCheckBonus, Target: "intelligence", Value: 15},
					{Type: ItemEffectSpecial, Target: "arrowEfficiencyMultiplier", Value: 1},
				},
			},
		},
		{
			ID:          "windTalisman",
			Name:        "顺风符",
			Category:    ItemCheck,
			Consumable:  true,
			Description: "黄纸朱砂，符文密布。此乃道家秘传，能召唤江风，助船疾行。孔明精通奇门遁甲，偶得此符。用后化灰。",
			Effect: ItemEffect{
				Type: ItemEffectMultiple,
				Effects: []ItemEffect{
					{Type: ItemEffectCheckBonus, Target: "intelligence", Value: 25},
					{Type: ItemEffectSpecial, Target: "retreatAutoSuccess", Value: 1},
				},
			},
			Trigger: ItemTrigger{AfterGreatSuccess: "check_event4"},
		},
		{
			ID:          "confusionIncense",
			Name:        "迷魂香",
			Category:    ItemCheck,
			Consumable:  true,
			Description: "异域香料，气味清雅。燃之能令人神思恍惚，难辨真假。甘宁亲兵暗中相赠，或有奇用。一次燃尽。",
			Effect:      ItemEffect{Type: ItemEffectSpecial, Target: "ganNingNightCheckAutoSuccess", Value: 1},
			Trigger: ItemTrigger{
				AfterSuccess: "check_event2",
				Condition:    &Condition{Variable: "ganNing.alertness", Operator: "<", Value: 65},
			},
		},
		{
			ID:          "xuanDeBrush",
			Name:        "玄德亲笔",
			Category:    ItemDialogue,
			Description: "刘备亲笔所书，墨迹犹新。纸上情真意切，言辞恳切。子敬见此，必忆故人之情，愿助一臂之力。",
			Effect: ItemEffect{
				Type:        ItemEffectAttributeChange,
				Target:      "luSu.trust",
				Value:       30,
				Description: "出示此信能够显著增加鲁肃对你的信任",
			},
			Trigger: ItemTrigger{InitialCarry: true},
		},
		{
			ID:          "luSuLetter",
			Name:        "鲁肃举荐信",
			Category:    ItemDialogue,
			Description: "鲁肃亲笔举荐，言辞恳切。信中盛赞孔明才德，力劝公瑾重用。有此信在手，可缓解周瑜疑虑。",
			Effect: ItemEffect{
				Type:        ItemEffectAttributeChange,
				Target:      "zhouYu.suspicion",
				Value:       -30,
				Description: "向周瑜出示此信能够显著降低其猜忌",
			},
		},
	}

	out := make(map[string]*Item, len(items))
	for _, it := range items {
		out[it.ID] = it
	}
	return out
}

// Default returns the full authored rule set for the story.
func Default() *Catalog {
	return &Catalog{
		Characters:      defaultCharacters(),
		Chapters:        defaultChapters(),
		Events:          defaultEvents(),
		Items:           defaultItems(),
		AttributeRanges: defaultAttributeRanges(),
		TrackRanges:     defaultTrackRanges(),
	}
}
