package catalog

func defaultChapters() map[int]*Chapter {
	return map[int]*Chapter{
		1: {
			ID:          1,
			Title:       "三日之约",
			OpeningText: "建安十三年冬，曹操率八十万大军南下，兵锋直指江东。孙刘联盟初成，共御强敌。时诸葛孔明奉刘玄德之命，留驻东吴襄助破曹。然东吴大都督周公瑾，虽英姿勃发，才略过人，却心胸偏狭，见孔明智谋超群，恐日后为东吴之患，遂生妒贤之心。",
			PlotSummary: "军议之上，周瑜心生妒忌，故意刁难诸葛亮，要求其在三日内造箭十万支。面对挑衅，诸葛亮需要做出选择（choice_event1）。若接受挑战，立下军令状（dialogue_event2，完成后获得军令状militaryOrder）。当夜鲁肃来访，需说服其相助（check_event1）。成功则获东吴虎符（dongwuTiger）；失败可出示玄德亲笔增加说服力。本章须在第一日内取得鲁肃的帮助，且不可令周瑜猜忌过高。",
			SuccessConditions: []Condition{
				{Item: "dongwuTiger"},
			},
			FailureConditions: []Condition{
				{Any: []Condition{
					{Variable: "timeProgress", Operator: ">", Value: 3},
					{Variable: "zhouYu.suspicion", Operator: ">=", Value: 100},
				}},
			},
			SuccessText: EndText{
				Title:       "第一章：智取东吴",
				Description: "成功说服鲁肃，获得了东吴虎符，为草船借箭做好了准备。",
				Narrative:   "第一章的目标已经达成。",
			},
			FailureText: EndText{
				Title:       "第一章：功败垂成",
				Description: "周瑜的猜忌达到顶点，你被逐出东吴。",
				Narrative:   "计划败露，任务失败。",
			},
			EventIDs:   []string{"choice_event1", "dialogue_event2", "check_event1"},
			ItemIDs:    []string{"militaryOrder", "dongwuTiger", "kongMingFan", "xuanDeBrush"},
			ActiveNPCs: []string{"zhouYu", "luSu"},
		},
		2: {
			ID:          2,
			Title:       "暗度陈仓",
			OpeningText: "次日拂晓，晨光熹微。你在鲁肃引领下，来到江边僻静之处，开始筹谋大计。然公瑾虽表面不动声色，暗中却遣人四处窥探，欲知你如何造箭。",
			PlotSummary: "清晨，诸葛亮向鲁肃索要船只草人等物资而不露真意（dialogue_event3）。甘宁突然到访质疑（choice_event2），若虚言掩饰则需智谋对决（check_event2），条件合适时可得迷魂香（confusionIncense）。午夜登台观天象，预测第三日必有大雾（dialogue_event4，完成后获得司南sima）。随后夜间秘密准备物资（check_event3），成功可得草人（grassman）。鲁肃见筹划有方，写下举荐信（luSuLetter）。若准备失败且周瑜警觉过高，可能触发甘宁夜查（emergency_event1）。",
			State: map[string]Track{
				"preparationProgress": {Initial: 0, Max: 100, Description: "准备进度"},
			},
			SuccessConditions: []Condition{
				{Variable: "preparationProgress", Operator: ">=", Value: 100},
			},
			FailureConditions: []Condition{
				{All: []Condition{
					{Variable: "timeProgress", Operator: ">", Value: 2},
					{Variable: "preparationProgress", Operator: "<", Value: 80},
				}},
			},
			SuccessText: EndText{
				Title:       "第二章：深入敌营",
				Description: "成功完成借箭前的全部筹备，江边船只草人俱已齐整。",
				Narrative:   "第二章的目标已经达成。",
			},
			FailureText: EndText{
				Title:       "第二章：计划败露",
				Description: "筹备迟缓，行迹败露，计划失败，面临重大危机。",
				Narrative:   "第二章计划失败。",
			},
			EventIDs: []string{
				"dialogue_event3", "choice_event2", "check_event2",
				"dialogue_event4", "check_event3", "emergency_event1",
			},
			ItemIDs:    []string{"sima", "confusionIncense", "grassman", "warDrum", "luSuLetter"},
			ActiveNPCs: []string{"luSu", "ganNing"},
		},
		3: {
			ID:          3,
			Title:       "雾夜借箭",
			OpeningText: "第三日子时，大雾弥天，长江之上白茫茫一片，对面不见人。正如你所料，天公作美，助你成事。",
			PlotSummary: "子时大雾弥漫，诸葛亮在船首动员士兵（dialogue_event5）。船队出发遇巡江哨船阻拦（choice_event3），有东吴虎符授权可顺利通过，否则强闯承受损失。抵近曹营水寨后擂鼓借箭（check_event4），结果决定箭支数量，大成功可得顺风符（windTalisman）。曹操疑有埋伏，万箭齐发。天将破晓须紧急撤退（check_event5），失败则追兵将至，触发最后抉择（choice_event4）。最终返回东吴，周瑜认输（dialogue_event7），进行最终结局判定。",
			State: map[string]Track{
				"dangerLevel":   {Initial: 0, Max: 100, Description: "危险等级，满100任务失败"},
				"soldierMorale": {Initial: 80, Max: 100, Description: "士兵士气，低于30会溃散"},
				"shipLoss":      {Initial: 0, Max: 20, Description: "损失的船只数量"},
			},
			FailureConditions: []Condition{
				{Any: []Condition{
					{Variable: "dangerLevel", Operator: ">=", Value: 100},
					{Variable: "soldierMorale", Operator: "<=", Value: 30},
				}},
			},
			Endings: []Ending{
				{
					ID: "perfect",
					Conditions: Condition{All: []Condition{
						{Variable: "arrows", Operator: ">=", Value: 100000},
						{Variable: "dangerLevel", Operator: "<", Value: 50},
						{Variable: "shipLoss", Operator: "==", Value: 0},
					}},
					EndText: EndText{
						Title:       "神机妙算",
						Description: "箭支充足，无人伤亡，完美完成任务。",
						Narrative:   "你的计策完美成功，获得了所有人的敬佩。",
					},
				},
				{
					ID: "success",
					Conditions: Condition{All: []Condition{
						{Variable: "arrows", Operator: ">=", Value: 80000},
						{Variable: "dangerLevel", Operator: "<", Value: 80},
					}},
					EndText: EndText{
						Title:       "智计过人",
						Description: "成功借得足够箭支，证明了自己的能力。",
						Narrative:   "虽有波折，但最终成功完成了任务。",
					},
				},
				{
					ID: "barely",
					Conditions: Condition{
						Variable: "arrows", Operator: ">=", Value: 50000,
					},
					EndText: EndText{
						Title:       "险中求胜",
						Description: "虽然过程惊险，但最终还是完成了任务。",
						Narrative:   "险象环生，勉强完成了任务。",
					},
				},
			},
			SuccessText: EndText{
				Title:       "第三章：雾夜借箭",
				Description: "成功完成草船借箭，获得足够的箭支。",
				Narrative:   "第三章的目标已经达成。",
			},
			FailureText: EndText{
				Title:       "功败垂成",
				Description: "未能完成任务，面临军法处置。",
				Narrative:   "计划失败，面临严重后果。",
			},
			EventIDs: []string{
				"dialogue_event5", "choice_event3", "check_event4",
				"check_event5", "choice_event4", "dialogue_event7",
			},
			ItemIDs:    []string{"windTalisman"},
			ActiveNPCs: []string{"ganNing"},
		},
	}
}
