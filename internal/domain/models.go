package domain

import "time"

// Difficulty tiers of the question pool. The stored value is the English
// key; labels shown in the game are Arabic.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyExpert = "expert"
)

// DifficultyLabels maps difficulty keys to their localized labels.
var DifficultyLabels = map[string]string{
	DifficultyEasy:   "سهل",
	DifficultyMedium: "متوسط",
	DifficultyHard:   "صعب",
	DifficultyExpert: "محترف",
}

// ValidDifficulty reports whether d is a known difficulty tier.
func ValidDifficulty(d string) bool {
	_, ok := DifficultyLabels[d]
	return ok
}

// AnswerLetters are the only accepted option labels.
var AnswerLetters = map[string]bool{"A": true, "B": true, "C": true, "D": true}

// DefaultQuestionPoints is the base point value when a question has none set.
const DefaultQuestionPoints = 10

// Question is the server-side representation, including the correct answer.
// It must never leave the server in this form; use Public for client payloads.
type Question struct {
	ID            int64  `json:"id"`
	Text          string `json:"question_text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty"`
	Points        int    `json:"points"`
}

// PublicQuestion is the client-safe projection of a Question: everything
// except the correct answer.
type PublicQuestion struct {
	ID         int64  `json:"id"`
	Text       string `json:"question_text"`
	OptionA    string `json:"option_a"`
	OptionB    string `json:"option_b"`
	OptionC    string `json:"option_c"`
	OptionD    string `json:"option_d"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Points     int    `json:"points"`
}

// Public strips the correct answer off a question.
func (q Question) Public() PublicQuestion {
	return PublicQuestion{
		ID:         q.ID,
		Text:       q.Text,
		OptionA:    q.OptionA,
		OptionB:    q.OptionB,
		OptionC:    q.OptionC,
		OptionD:    q.OptionD,
		Category:   q.Category,
		Difficulty: q.Difficulty,
		Points:     q.Points,
	}
}

// BasePoints returns the question's point value, defaulting when unset.
func (q Question) BasePoints() int {
	if q.Points <= 0 {
		return DefaultQuestionPoints
	}
	return q.Points
}

// Answer records one submission within a game session. The first answer for
// a position is authoritative; later submissions for the same position are
// rejected.
type Answer struct {
	QuestionIndex int       `json:"question_index"`
	QuestionID    int64     `json:"question_id"`
	Answer        string    `json:"answer"`
	CorrectAnswer string    `json:"correct_answer"`
	IsCorrect     bool      `json:"is_correct"`
	PointsEarned  int       `json:"points_earned"`
	TimeTaken     int       `json:"time_taken"`
	AnsweredAt    time.Time `json:"answered_at"`
}

// GameSession is one user's in-progress play-through. The question sequence
// is fixed at creation; answers are sparse, keyed by question position.
type GameSession struct {
	ID         string         `json:"game_id"`
	UserID     int64          `json:"user_id"`
	Questions  []Question     `json:"questions"`
	Current    int            `json:"current_question"`
	Answers    map[int]Answer `json:"answers"`
	Score      int            `json:"score"`
	StartedAt  time.Time      `json:"start_time"`
	Difficulty string         `json:"difficulty"`
	Category   string         `json:"category"`
}

// StartResult is returned by the start operation.
type StartResult struct {
	GameID        string           `json:"game_id"`
	Questions     []PublicQuestion `json:"questions"`
	QuestionCount int              `json:"question_count"`
	Difficulty    string           `json:"difficulty"`
	Category      string           `json:"category"`
}

// SubmitResult is returned by the answer operation.
type SubmitResult struct {
	IsCorrect       bool   `json:"is_correct"`
	CorrectAnswer   string `json:"correct_answer"`
	PointsEarned    int    `json:"points_earned"`
	TotalScore      int    `json:"total_score"`
	IsComplete      bool   `json:"is_game_complete"`
	CurrentQuestion int    `json:"current_question"`
	TotalQuestions  int    `json:"total_questions"`
}

// GameSummary is the read-only projection produced when a game ends.
type GameSummary struct {
	GameID         string   `json:"game_id"`
	Score          int      `json:"score"`
	TotalQuestions int      `json:"total_questions"`
	Correct        int      `json:"correct_answers"`
	Wrong          int      `json:"wrong_answers"`
	Skipped        int      `json:"skipped_answers"`
	Percentage     float64  `json:"percentage"`
	TimeTaken      int      `json:"time_taken"`
	Difficulty     string   `json:"difficulty"`
	Category       string   `json:"category"`
	Answers        []Answer `json:"answers"`
}

// User is an account row. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Level        string    `json:"level"`
	TotalScore   int       `json:"total_score"`
	GamesPlayed  int       `json:"games_played"`
	BestScore    int       `json:"best_score"`
	RegisteredAt time.Time `json:"registration_date"`
	LastLogin    time.Time `json:"last_login"`
}

// Achievement is an unlocked badge for a user, named in Arabic as in the game.
type Achievement struct {
	Name        string    `json:"achievement_name"`
	Description string    `json:"achievement_description"`
	Icon        string    `json:"achievement_icon"`
	EarnedAt    time.Time `json:"earned_at"`
}

// GameRecord is one finished game as shown in history listings.
type GameRecord struct {
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Correct        int       `json:"correct_answers"`
	Percentage     float64   `json:"percentage"`
	Difficulty     string    `json:"difficulty_level"`
	PlayedAt       time.Time `json:"game_date"`
}

// UserStats aggregates a user's play history.
type UserStats struct {
	TotalScore   int           `json:"total_score"`
	GamesPlayed  int           `json:"games_played"`
	BestScore    int           `json:"best_score"`
	AverageScore float64       `json:"average_score"`
	Rank         int           `json:"rank"`
	Level        string        `json:"level"`
	RecentGames  []GameRecord  `json:"recent_games"`
	Achievements []Achievement `json:"achievements"`
}

// Profile is the full account view: the user plus their aggregates.
type Profile struct {
	User  User      `json:"user"`
	Stats UserStats `json:"stats"`
}

// LeaderboardEntry is one row of the global leaderboard.
type LeaderboardEntry struct {
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	Level       string `json:"level"`
	TotalScore  int    `json:"total_score"`
	GamesPlayed int    `json:"games_played"`
}

// Leaderboard is an ordered snapshot of the top players.
type Leaderboard struct {
	Entries   []LeaderboardEntry `json:"entries"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// QuestionStatistics summarizes the active question pool.
type QuestionStatistics struct {
	Total        int            `json:"total"`
	ByCategory   map[string]int `json:"by_category"`
	ByDifficulty map[string]int `json:"by_difficulty"`
}
