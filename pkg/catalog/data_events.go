package catalog

func defaultEvents() map[string]*Event {
	events := []*Event{
		{
			ID:      "dialogue_event2",
			Type:    EventDialogue,
			Chapter: 1,
			Title:   "立下军令",
			Content: "公瑾闻言，佯作惊诧，实则心中窃喜。即令左右取军令状来，白绢黑字，森然可畏。其上写明：限三日内交箭十万，如违期限，甘当军法。你提笔濡墨，从容书名，印上朱泥。公瑾收起军令，与你约定三日为期。",
		},
		{
			ID:      "dialogue_event3",
			Type:    EventDialogue,
			Chapter: 2,
			Title:   "索要物资",
			Content: "你微微一笑：'子敬勿忧。烦请为亮备快船二十艘，每船用军士三十人，船皆用青布为幔，各束草千余个，分布两厢。吾别有妙用。'子敬愕然：'莫非先生欲往曹营劫寨？'你摇首不语，只道：'但依此行，勿令公瑾得知。'",
		},
		{
			ID:      "dialogue_event4",
			Type:    EventDialogue,
			Chapter: 2,
			Title:   "天机预测",
			Content: "高台之上，夜风料峭。你负手而立，仰望苍穹。但见箕星东指，毕星西垂，心中暗自推算。忽而抚掌而笑：'善哉！善哉！'原来你夜观天象，已知三日后长江之上必有大雾。此正天助我也！",
		},
		{
			ID:      "dialogue_event5",
			Type:    EventDialogue,
			Chapter: 3,
			Title:   "出发前动员",
			Content: "子时已至，大雾弥天。你立于船首，见将士面有忧色。遂扬声励众，言明今夜只需擂鼓呐喊，不必真个厮杀。曹贼生性多疑，雾中必不敢轻出。待得功成，人人有赏。众军闻言，渐觉心安。",
		},
		{
			ID:      "dialogue_event7",
			Type:    EventDialogue,
			Chapter: 3,
			Title:   "周瑜认输",
			Content: "但见船船箭支如林，军士搬运不绝。有司清点，共得箭十万三千有余。公瑾面色数变，强颜笑道：'先生真神人也！瑜不及远矣！'",
		},
		{
			ID:          "choice_event1",
			Type:        EventChoice,
			Chapter:     1,
			Title:       "应对挑衅",
			Description: "面对周瑜的刁难，你如何应对？",
			OptionOrder: []string{"A", "B"},
			Options: map[string]ChoiceOption{
				"A": {
					Text:         "慨然应诺：'三日足矣，亮愿立军令状。'",
					Consequences: "接受挑战，开启三日倒计时，随后立下军令状。",
					Effects: []Effect{
						{Type: EffectFlag, Target: "acceptChallenge"},
					},
				},
				"B": {
					Text:         "推辞婉拒：'此事重大，容亮思虑。'",
					Consequences: "直接触发失败结局。",
					ResultText:   "公瑾拍案而起，厉声道：'先生莫非轻视东吴？既无良策，何必在此空谈！'众将肃然，气氛凝重。你的推辞彻底激怒了周瑜，被当场逐出军议。",
					Effects: []Effect{
						{Type: EffectEndFail},
					},
				},
			},
		},
		{
			ID:          "choice_event2",
			Type:        EventChoice,
			Chapter:     2,
			Title:       "应对甘宁",
			Description: "甘宁冷笑：'准备船只作甚？莫非要临阵脱逃？'",
			OptionOrder: []string{"A", "B"},
			Options: map[string]ChoiceOption{
				"A": {
					Text:         "虚言掩饰：'训练水军阵法。'",
					Consequences: "需要与甘宁进行智谋对决。",
				},
				"B": {
					Text:         "反客为主：'甘将军为何如此关心？'",
					Consequences: "甘宁机警值上升，视对话情况或退去或恼羞成怒。",
					Effects: []Effect{
						{Type: EffectChange, Target: "ganNing.alertness", Value: "+15"},
					},
				},
			},
		},
		{
			ID:          "choice_event3",
			Type:        EventChoice,
			Chapter:     3,
			Title:       "突破封锁",
			Description: "巡江将领：'都督有令，夜间不得出江！'",
			OptionOrder: []string{"A", "B"},
			Options: map[string]ChoiceOption{
				"A": {
					Text:         "出示鲁肃授权：'奉子敬将军之命。'",
					Requirements: []string{"usedItem:dongwuTiger"},
					Consequences: "凭鲁肃的授权顺利通过，无损失。",
					ResultText:   "巡江将领验看授权令牌，恭敬行礼：'原来是子敬将军安排，末将这就放行。'船队顺利通过。",
				},
				"B": {
					Text:         "强闯：'军情紧急，后果我担！'",
					Consequences: "触发武力冲突，损失船只，士气下降，但能冲出封锁。",
					ResultText:   "你当机立断：'军情如火，延误战机罪责谁担？'强行突围。巡江军仓促应战，你损失两艘船，士兵士气下降，但终究冲出封锁。",
					Effects: []Effect{
						{Type: EffectChange, Target: "shipLoss", Value: "+2"},
						{Type: EffectChange, Target: "soldierMorale", Value: "-15"},
					},
				},
			},
		},
		{
			ID:          "choice_event4",
			Type:        EventChoice,
			Chapter:     3,
			Title:       "最后危机",
			Description: "追兵将至，船因载箭过重行动缓慢",
			OptionOrder: []string{"A", "B"},
			Options: map[string]ChoiceOption{
				"A": {
					Text:         "抛弃部分箭支加速",
					Consequences: "箭支数量减少，士气下降，但成功逃脱。",
					ResultText:   "你忍痛下令：'抛箭保命！'士兵们将部分箭支推入江中，船速立时加快。虽有损失，总算保全性命。",
					Effects: []Effect{
						{Type: EffectChange, Target: "arrows", Value: "-20000"},
						{Type: EffectChange, Target: "soldierMorale", Value: "-10"},
					},
				},
				"B": {
					Text:         "祈求顺风",
					Requirements: []string{"usedItem:windTalisman"},
					Consequences: "得顺风符庇佑，箭支数量不变，完美逃脱。",
					ResultText:   "你想起之前获得的顺风符庇佑，高声祈祷。忽然江风大作，助船疾行。曹军追之不及，只能望江兴叹。",
				},
			},
		},
		{
			ID:                  "check_event1",
			Type:                EventCheck,
			Chapter:             1,
			Title:               "说服鲁肃",
			Description:         "夜深人静，子敬悄然来访。烛光摇曳间，故人相对而坐。你需巧言说服，方得其助。",
			CheckTarget:         "eloquence",
			SuccessThreshold:    60,
			AdditionalCondition: "若鲁肃信任值未达到80，需要使用玄德亲笔增加说服力",
			SuccessText:         "子敬听罢，沉吟良久，终于下定决心。他从怀中取出一枚虎符，郑重交与你手：'此乃调兵虎符，先生持此可调船只。但切记，此事万不可让公瑾知晓。'",
			FailureText:         "子敬面露难色：'先生之事，肃定当相助。容我明日再做安排。'言罢匆匆离去。",
			SuccessEffects: []Effect{
				{Type: EffectChange, Target: "luSu.trust", Value: "+20"},
				{Type: EffectFlag, Target: "convinceLuSu"},
			},
			FailureEffects: []Effect{
				{Type: EffectChange, Target: "luSu.trust", Value: "-10"},
			},
		},
		{
			ID:                  "check_event2",
			Type:                EventCheck,
			Chapter:             2,
			Title:               "智谋对决",
			Description:         "甘将军目光如炬，疑窦丛生。你需以智谋相抗，瞒天过海。",
			CheckTarget:         "intelligence",
			SuccessThreshold:    60,
			AdditionalCondition: "若智谋值超过甘宁机警值20点以上，且甘宁机警值低于65，则额外获得迷魂香",
			SuccessText:         "甘宁虽有疑虑，但无实据，只得悻悻而去。临行前，其亲兵悄悄塞给你一包香料，低声道：'将军虽严，亦知先生非常人，此物或有用处。'",
			FailureText:         "甘宁冷笑：'先生之言，皆为谎言！你必有异图，不可放走！'",
			SuccessEffects: []Effect{
				{Type: EffectChange, Target: "ganNing.alertness", Value: "-5"},
			},
			FailureEffects: []Effect{
				{Type: EffectEndFail},
			},
		},
		{
			ID:                  "check_event3",
			Type:                EventCheck,
			Chapter:             2,
			Title:               "夜间准备",
			Description:         "月黑风高，正宜行事。你需暗中调度，不露行迹。",
			CheckTarget:         "intelligence",
			SuccessThreshold:    60,
			AdditionalCondition: "需要智谋值加上一半的体力值达到80才能成功",
			SuccessText:         "你躬亲督导，指挥如定。将士们连夜加紧制作草人，准备工作进展顺利。",
			FailureText:         "你竭尽全力，却无奈人手不足，进展缓慢。此时已近天明，只得先作罢手。",
			SuccessEffects: []Effect{
				{Type: EffectChange, Target: "preparationProgress", Value: "+60"},
				{Type: EffectChange, Target: "zhugeLiang.stamina", Value: "-10"},
			},
			FailureEffects: []Effect{
				{Type: EffectChange, Target: "preparationProgress", Value: "+20"},
				{Type: EffectChange, Target: "zhugeLiang.stamina", Value: "-20"},
			},
		},
		{
			ID:               "check_event4",
			Type:             EventCheck,
			Chapter:          3,
			Title:            "擂鼓借箭",
			Description:      "雾锁长江，万籁俱寂。你需审时度势，引箭入彀。",
			CheckTarget:      "intelligence",
			SuccessThreshold: 60,
			SuccessText:      "你指挥如定，将士擂鼓如雷。曹贼隔雾听得声威，不敢轻动，只以千箭万箭射向江心。",
			FailureText:      "雾较预期早散，曹军渐见形迹。你急令撤退，可惜箭支不足，功不全成。",
			SuccessEffects: []Effect{
				{Type: EffectChange, Target: "arrows", Value: "+100000"},
				{Type: EffectChange, Target: "soldierMorale", Value: "+10"},
				{Type: EffectChange, Target: "dangerLevel", Value: "+15"},
			},
			GreatSuccessEffects: []Effect{
				{Type: EffectChange, Target: "arrows", Value: "+120000"},
				{Type: EffectChange, Target: "soldierMorale", Value: "+20"},
				{Type: EffectChange, Target: "dangerLevel", Value: "+10"},
			},
			FailureEffects: []Effect{
				{Type: EffectChange, Target: "arrows", Value: "+70000"},
				{Type: EffectChange, Target: "soldierMorale", Value: "-10"},
				{Type: EffectChange, Target: "dangerLevel", Value: "+30"},
			},
		},
		{
			ID:                  "check_event5",
			Type:                EventCheck,
			Chapter:             3,
			Title:               "紧急撤退",
			Description:         "天将破晓，雾渐消散。你需当机立断，全身而退。",
			CheckTarget:         "intelligence",
			SuccessThreshold:    60,
			AdditionalCondition: "需要智谋值加上一半的士兵士气达到100才能成功",
			SuccessText:         "你当机立断，令船队迅速撤离。将士们执行如风，顺利脱险。",
			FailureText:         "你略显迟疑，曹军已觉异常。撤退中有部分箭支散落，将士们亦颇有惧疑。",
			SuccessEffects: []Effect{
				{Type: EffectChange, Target: "soldierMorale", Value: "+10"},
			},
			FailureEffects: []Effect{
				{Type: EffectChange, Target: "arrows", Value: "-15000"},
				{Type: EffectChange, Target: "soldierMorale", Value: "-15"},
			},
		},
		{
			ID:               "emergency_event1",
			Type:             EventEmergency,
			Chapter:          2,
			Title:            "甘宁夜查",
			Description:      "三更时分，甘宁率兵突至。火把照如白昼，将你等围在当中。'深夜至此，所为何事？'甘宁目光如电，手按剑柄。",
			TriggerCondition: "当夜间准备失败且时间进度达到第2日时触发",
			TriggerWhen: &Condition{All: []Condition{
				{Flag: "check_event3_failure"},
				{Variable: "timeProgress", Operator: ">=", Value: 2},
			}},
			CheckTarget:      "intelligence",
			SuccessThreshold: 80,
			FailureEffects: []Effect{
				{Type: EffectEndFail},
			},
		},
	}

	out := make(map[string]*Event, len(events))
	for _, e := range events {
		out[e.ID] = e
	}
	return out
}
