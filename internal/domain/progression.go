package domain

// Player levels, ordered by total-score thresholds.
const (
	LevelBeginner     = "مبتدئ"
	LevelIntermediate = "متوسط"
	LevelAdvanced     = "متقدم"
	LevelProfessional = "محترف"
)

// LevelForScore maps a user's accumulated total score to their level.
func LevelForScore(totalScore int) string {
	switch {
	case totalScore >= 2000:
		return LevelProfessional
	case totalScore >= 1000:
		return LevelAdvanced
	case totalScore >= 500:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}

// InitialAchievements are granted when an account is created.
func InitialAchievements() []Achievement {
	return []Achievement{
		{Name: "الانضمام", Description: "لقد انضممت إلى لعبة وريث", Icon: "fa-user-plus"},
		{Name: "البداية", Description: "تم إنشاء حسابك بنجاح", Icon: "fa-flag-checkered"},
	}
}

// ProgressSnapshot is the post-game state used to evaluate unlocks.
type ProgressSnapshot struct {
	GamePercentage float64
	GameScore      int
	GamesPlayed    int
	TotalScore     int
}

// EvaluateAchievements returns the achievements the snapshot qualifies for.
// Callers deduplicate against already-earned names; granting is idempotent
// per name.
func EvaluateAchievements(p ProgressSnapshot) []Achievement {
	var unlocked []Achievement

	if p.GamePercentage == 100 {
		unlocked = append(unlocked, Achievement{Name: "مثالي", Description: "حققت 100% في لعبة", Icon: "fa-star"})
	}
	if p.GameScore >= 90 {
		unlocked = append(unlocked, Achievement{Name: "درجة عالية", Description: "حققت 90 نقطة أو أكثر", Icon: "fa-trophy"})
	}

	switch p.GamesPlayed {
	case 10:
		unlocked = append(unlocked, Achievement{Name: "لاعب منتظم", Description: "أكملت 10 ألعاب", Icon: "fa-gamepad"})
	case 50:
		unlocked = append(unlocked, Achievement{Name: "لاعب نشط", Description: "أكملت 50 لعبة", Icon: "fa-fire"})
	case 100:
		unlocked = append(unlocked, Achievement{Name: "محترف", Description: "أكملت 100 لعبة", Icon: "fa-crown"})
	}

	switch {
	case p.TotalScore >= 2000:
		unlocked = append(unlocked, Achievement{Name: "خبير", Description: "وصلت إلى 2000 نقطة", Icon: "fa-crown"})
	case p.TotalScore >= 1000:
		unlocked = append(unlocked, Achievement{Name: "متقدم", Description: "وصلت إلى 1000 نقطة", Icon: "fa-award"})
	case p.TotalScore >= 500:
		unlocked = append(unlocked, Achievement{Name: "متوسط", Description: "وصلت إلى 500 نقطة", Icon: "fa-medal"})
	}

	return unlocked
}
