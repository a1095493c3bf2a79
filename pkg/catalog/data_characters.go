package catalog

func defaultCharacters() map[string]Character {
	return map[string]Character{
		"zhugeLiang": {
			ID:          "zhugeLiang",
			Name:        "诸葛亮",
			Description: "字孔明，号卧龙。刘备军师，羽扇纶巾，飘然若仙。胸藏天地，腹隐兵机。善观天象，能察人心。",
			IsPlayer:    true,
			Attributes: map[string]int{
				"intelligence": 95,
				"eloquence":    90,
				"stamina":      100,
			},
		},
		"zhouYu": {
			ID:          "zhouYu",
			Name:        "周瑜",
			Description: "字公瑾，东吴大都督。姿质风流，雅量高致。然器量偏狭，见贤思齐而又妒贤嫉能。猜忌值越高，越对诸葛亮刁难。",
			Attributes: map[string]int{
				"intelligence": 92,
				"suspicion":    50,
			},
		},
		"luSu": {
			ID:          "luSu",
			Name:        "鲁肃",
			Description: "字子敬，东吴谋臣。为人方正，宽厚长者。识才爱才，常为善类。信任值越高，越愿意帮助诸葛亮。",
			Attributes: map[string]int{
				"trust": 50,
			},
		},
		"ganNing": {
			ID:          "ganNing",
			Name:        "甘宁",
			Description: "字兴霸，东吴大将。性烈如火，忠勇过人。奉公瑾之命，暗中监视。机警值越高，对玩家越刁难。",
			Attributes: map[string]int{
				"intelligence": 65,
				"alertness":    75,
			},
		},
	}
}

func defaultAttributeRanges() map[string]Range {
	return map[string]Range{
		"intelligence": {Min: 0, Max: 100},
		"eloquence":    {Min: 0, Max: 100},
		"stamina":      {Min: 0, Max: 100},
		"trust":        {Min: 0, Max: 100},
		"suspicion":    {Min: 0, Max: 100},
		"alertness":    {Min: 0, Max: 100},
	}
}

func defaultTrackRanges() map[string]Range {
	return map[string]Range{
		"timeProgress":        {Min: 1, Max: 3},
		"arrows":              {Min: 0, Max: 120000},
		"persuasionProgress":  {Min: 0, Max: 100},
		"preparationProgress": {Min: 0, Max: 100},
		"dangerLevel":         {Min: 0, Max: 100},
		"soldierMorale":       {Min: 0, Max: 100},
		"shipLoss":            {Min: 0, Max: 20},
	}
}
