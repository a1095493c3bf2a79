package state

import "github.com/Sherwin-Cui/three-kindoms/pkg/catalog"

// ChapterEnd describes a resolved chapter outcome.
type ChapterEnd struct {
	Success     bool   `json:"success"`
	Chapter     int    `json:"chapter"`
	Ending      string `json:"ending,omitempty"` // chapter 3 tier id
	Title       string `json:"title"`
	Description string `json:"description"`
	Narrative   string `json:"narrative"`
	NextChapter int    `json:"next_chapter,omitempty"`
	JudgedByAI  bool   `json:"judged_by_ai,omitempty"`
}

// CheckGameEnd evaluates the current chapter's resolution conditions and
// returns nil while the chapter continues. Failure is decided here from
// declared conditions alone. Success comes from declared success conditions
// (chapters 1 and 2) or the priority-ordered endings table (chapter 3);
// chapter 1 additionally resolves through the trust shortcut: once Lu Su's
// trust reaches 80 with the persuasion flag set, the tiger tally is granted
// and the chapter succeeds.
func (s *Store) CheckGameEnd() *ChapterEnd {
	ch := s.cat.Chapter(s.gs.Chapter)
	if ch == nil {
		return nil
	}

	if s.gs.Chapter == 1 && !s.gs.Items["dongwuTiger"] {
		if trust := s.gs.Attributes["luSu"]["trust"]; trust >= 80 && s.gs.Flags["convinceLuSu"] {
			s.gs.Items["dongwuTiger"] = true
			s.gs.Flags["borrowArrows"] = true
			s.logger.Info("trust shortcut granted tiger tally", "trust", trust)
		}
	}

	if len(ch.Endings) > 0 {
		for _, ending := range ch.Endings {
			if ending.Conditions.Eval(s) {
				return &ChapterEnd{
					Success:     true,
					Chapter:     ch.ID,
					Ending:      ending.ID,
					Title:       ending.Title,
					Description: ending.Description,
					Narrative:   ending.Narrative,
				}
			}
		}
	} else if evalAll(s, ch.SuccessConditions) {
		return &ChapterEnd{
			Success:     true,
			Chapter:     ch.ID,
			Title:       ch.SuccessText.Title,
			Description: ch.SuccessText.Description,
			Narrative:   ch.SuccessText.Narrative,
			NextChapter: ch.ID + 1,
		}
	}

	if evalAll(s, ch.FailureConditions) {
		return s.FailChapter("")
	}
	return nil
}

// FailChapter resolves the current chapter as failed. An empty reason uses
// the authored failure text.
func (s *Store) FailChapter(reason string) *ChapterEnd {
	ch := s.cat.Chapter(s.gs.Chapter)
	if ch == nil {
		return nil
	}
	end := &ChapterEnd{
		Chapter:     ch.ID,
		Title:       ch.FailureText.Title,
		Description: ch.FailureText.Description,
		Narrative:   ch.FailureText.Narrative,
	}
	if reason != "" {
		end.Description = reason
	}
	return end
}

// Chapter3Ending picks the ending tier for a narrator-judged chapter 3
// success, defaulting to the plain success tier when no tier matches.
func (s *Store) Chapter3Ending() *catalog.Ending {
	ch := s.cat.Chapter(3)
	if ch == nil || len(ch.Endings) == 0 {
		return nil
	}
	for i := range ch.Endings {
		if ch.Endings[i].Conditions.Eval(s) {
			return &ch.Endings[i]
		}
	}
	for i := range ch.Endings {
		if ch.Endings[i].ID == "success" {
			return &ch.Endings[i]
		}
	}
	return nil
}

func evalAll(sv catalog.StateView, conds []catalog.Condition) bool {
	if len(conds) == 0 {
		return false
	}
	for _, c := range conds {
		if !c.Eval(sv) {
			return false
		}
	}
	return true
}
