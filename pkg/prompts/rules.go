package prompts

// Authored narrator guidance: how NPC attributes should move in reaction to
// player behavior, and how chapter progress values accrue. These are prompt
// text, not mechanics; the state layer clamps whatever comes back.

var reactionRules = map[string]string{
	"zhouYu":  "【- 玩家谦逊示弱：suspicion -5到-10（如\"在下才疏学浅\"、\"都督高见\"）\n- 玩家显示才能：suspicion +5到+15（如提及功绩、表现自信）\n- 玩家讽刺挑衅：suspicion +15到+25（如质疑周瑜能力、言语轻慢）\n- 玩家推辞任务：suspicion +20到+30（如拒绝造箭、找借口）】",
	"luSu":    "【- 玩家以大义劝说：trust +5到+10（如\"抗曹大业\"、\"孙刘联盟\"）\n- 玩家展现真诚：trust +10到+15（如坦诚相告、推心置腹）\n- 玩家欺骗威胁：trust -10到-20（如编造谎言、恐吓威胁）\n- 玩家提及刘备：trust +5（如\"玄德兄托我\"、\"刘皇叔\"）】",
	"ganNing": "【- 玩家强硬对抗：alertness +5到+10（如言语冲突、拒绝配合）\n- 玩家巧言应对：alertness -5（如转移话题、合理解释）\n- 玩家露出破绽：alertness +10到+15（如言语矛盾、紧张慌乱）】",
}

// luSuChapter2Rule replaces Lu Su's chapter 1 persuasion rules once the
// focus moves to logistics.
const luSuChapter2Rule = "【- 玩家请求帮助：trust +5（如详细说明需求）\n- 玩家表现焦虑：trust -5（如催促鲁肃、言语急切）】"

var progressRules = map[int]map[string]string{
	1: {
		"persuasionProgress": "【- 每次与鲁肃对话：+5\n- 提及\"曹操大军\"、\"八十万\"：+10\n- 提及\"东吴安危\"、\"江东\"：+15\n- 展示计划\"我有妙计\"、\"三日可成\"：+20\n- 提及\"子敬兄\"、\"故人\"：+10\n- 冒犯鲁肃：-10到-20】",
	},
	2: {
		"preparationProgress": "【- 每次准备行动：+5\n- 成功获取物资：+20到+30\n- 鲁肃全力支持：+15到+25\n- 遭遇阻碍：+5或不变\n- 夜间准备检定成功：+60（固定值）】",
	},
	3: {
		"arrows":        "【- 擂鼓借箭检定结果决定：大成功120000，成功100000，失败70000，大失败40000\n- 抛箭加速：-20000\n- 撤退失败：-15000】",
		"dangerLevel":   "【- 每次行动基础：+10\n- 遭遇巡逻：+15到+20\n- 擂鼓声过大：+10到+15\n- 曹军起疑：+20到+30\n- 成功规避：+5或不变】",
		"soldierMorale": "【- 玩家鼓舞（\"必胜\"、\"重赏\"）：+10到+20\n- 看到成效：+15到+25\n- 遭遇危险：-10到-20\n- 损失船只：-15\n- 玩家慌张：-10到-20】",
		"shipLoss":      "【- 强闯封锁：+2\n- 其他损失事件：+1到+3\n- 每损失1艘船，箭支容量-5000】",
	},
}

const outputRequirements = `## 输出要求
**根据当前的对话历史判断，你应该如何安排旁白和出场人物的发言顺序和内容以及数值变化。**
请根据当前情况，以JSON格式输出：
{
  "narrative": "环境描述和剧情推进的叙述文本",
  "npc_dialogue": {
    "speaker": "NPC名字",
    "content": "对话内容"
  },
  "value_changes": {
    "npcName": {
      "attribute": "±数值"
    }
  },
  "special_progress": {
    "progressName": "±数值"
  },
  "event_suggestion": {
    "should_trigger": true/false,
    "event_id": "事件ID",
    "reason": "触发理由"
  },
  "item_grant": {
    "should_grant": true/false,
    "item_id": "道具ID",
    "condition_met": "条件说明"
  },
  "gameEndJudgment": {
    "isEnd": true/false,
    "endType": "Success或Failure",
    "reason": "结局判定的详细原因"
  }
}

**重要说明：**
- event_suggestion字段：当需要触发事件时，设置should_trigger为true，并提供事件ID和触发理由
- item_grant字段：当需要获得道具时，设置should_grant为true，并提供道具ID和条件说明
- special_progress字段：用于更新特殊进度值，如preparationProgress等
- gameEndJudgment字段：**你负责成功结局的判定！**当剧情自然发展到可以成功结束时，必须输出成功结局判定
  * 系统只负责失败条件的检查（如数值过低、时间耗尽等）
  * 成功结局必须由你来判定，特别是第三章，当草船借箭任务成功完成时
  * 判定成功时设置isEnd=true, endType="Success"，并详细说明成功的原因
- 如果不需要触发事件或获得道具，对应字段可以省略或设为null`

const narratorRole = `你是《草船借箭》文字冒险游戏的旁白兼全体NPC。你的职责：
1. 以古典白话叙述剧情，推进故事
2. 扮演在场NPC，按其性格发言
3. 根据玩家言行输出数值变化
4. 判断剧情是否应当进入成功结局
5. 识别何时应该触发特定事件，并按照格式输出`
