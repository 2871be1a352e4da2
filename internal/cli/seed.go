package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"

	"wareeth/internal/config"
	"wareeth/internal/domain"
	pgstore "wareeth/internal/infra/postgres"
)

// NewSeedCmd loads the built-in question set into postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with the built-in question set",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath)
		},
	}
}

func runSeed(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := pgstore.NewQuestionStore(pool)
	for _, q := range sampleQuestions() {
		if _, err := store.Add(ctx, q); err != nil {
			return err
		}
	}
	log.Printf("seeded %d questions", len(sampleQuestions()))
	return nil
}

// sampleQuestions is the built-in Arabic heritage question set. It seeds
// postgres deployments and backs the in-memory store when no database is
// configured.
func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			Text:          "ما هو اسم أطول نهر في الوطن العربي؟",
			OptionA:       "نهر الفرات",
			OptionB:       "نهر النيل",
			OptionC:       "نهر دجلة",
			OptionD:       "نهر الأردن",
			CorrectAnswer: "B",
			Category:      "جغرافيا",
			Difficulty:    domain.DifficultyEasy,
			Points:        10,
		},
		{
			Text:          "من هو الشاعر الملقب بأمير الشعراء؟",
			OptionA:       "أحمد شوقي",
			OptionB:       "المتنبي",
			OptionC:       "حافظ إبراهيم",
			OptionD:       "نزار قباني",
			CorrectAnswer: "A",
			Category:      "أدب",
			Difficulty:    domain.DifficultyEasy,
			Points:        10,
		},
		{
			Text:          "في أي مدينة يقع الجامع الأزهر؟",
			OptionA:       "دمشق",
			OptionB:       "بغداد",
			OptionC:       "القاهرة",
			OptionD:       "فاس",
			CorrectAnswer: "C",
			Category:      "تاريخ",
			Difficulty:    domain.DifficultyEasy,
			Points:        10,
		},
		{
			Text:          "ما هي عاصمة الدولة الأموية؟",
			OptionA:       "بغداد",
			OptionB:       "دمشق",
			OptionC:       "القيروان",
			OptionD:       "قرطبة",
			CorrectAnswer: "B",
			Category:      "تاريخ",
			Difficulty:    domain.DifficultyEasy,
			Points:        10,
		},
		{
			Text:          "من هو مؤلف كتاب مقدمة ابن خلدون؟",
			OptionA:       "ابن سينا",
			OptionB:       "ابن رشد",
			OptionC:       "ابن خلدون",
			OptionD:       "الفارابي",
			CorrectAnswer: "C",
			Category:      "أدب",
			Difficulty:    domain.DifficultyEasy,
			Points:        10,
		},
		{
			Text:          "ما هو اسم أكبر صحراء في العالم وتقع معظمها في الوطن العربي؟",
			OptionA:       "صحراء الربع الخالي",
			OptionB:       "الصحراء الكبرى",
			OptionC:       "صحراء النفود",
			OptionD:       "صحراء سيناء",
			CorrectAnswer: "B",
			Category:      "جغرافيا",
			Difficulty:    domain.DifficultyMedium,
			Points:        10,
		},
		{
			Text:          "في أي عام تأسست جامعة الدول العربية؟",
			OptionA:       "1943",
			OptionB:       "1944",
			OptionC:       "1945",
			OptionD:       "1946",
			CorrectAnswer: "C",
			Category:      "تاريخ",
			Difficulty:    domain.DifficultyMedium,
			Points:        10,
		},
		{
			Text:          "من هو العالم العربي الذي اخترع الجبر؟",
			OptionA:       "الخوارزمي",
			OptionB:       "ابن الهيثم",
			OptionC:       "جابر بن حيان",
			OptionD:       "البيروني",
			CorrectAnswer: "A",
			Category:      "علوم",
			Difficulty:    domain.DifficultyMedium,
			Points:        10,
		},
		{
			Text:          "ما هو اسم البحر الذي يفصل بين شبه الجزيرة العربية وأفريقيا؟",
			OptionA:       "البحر الأبيض المتوسط",
			OptionB:       "الخليج العربي",
			OptionC:       "البحر الأحمر",
			OptionD:       "بحر العرب",
			CorrectAnswer: "C",
			Category:      "جغرافيا",
			Difficulty:    domain.DifficultyMedium,
			Points:        10,
		},
		{
			Text:          "من هو مؤلف معلقة \"قفا نبك من ذكرى حبيب ومنزل\"؟",
			OptionA:       "عنترة بن شداد",
			OptionB:       "امرؤ القيس",
			OptionC:       "زهير بن أبي سلمى",
			OptionD:       "طرفة بن العبد",
			CorrectAnswer: "B",
			Category:      "أدب",
			Difficulty:    domain.DifficultyHard,
			Points:        10,
		},
		{
			Text:          "في أي قرن عاش العالم ابن الهيثم مؤسس علم البصريات؟",
			OptionA:       "القرن التاسع",
			OptionB:       "القرن العاشر",
			OptionC:       "القرن الحادي عشر",
			OptionD:       "القرن الثاني عشر",
			CorrectAnswer: "C",
			Category:      "علوم",
			Difficulty:    domain.DifficultyHard,
			Points:        10,
		},
		{
			Text:          "ما هو اسم المعركة التي انتصر فيها صلاح الدين الأيوبي على الصليبيين عام 1187؟",
			OptionA:       "معركة عين جالوت",
			OptionB:       "معركة حطين",
			OptionC:       "معركة اليرموك",
			OptionD:       "معركة القادسية",
			CorrectAnswer: "B",
			Category:      "تاريخ",
			Difficulty:    domain.DifficultyMedium,
			Points:        10,
		},
		{
			Text:          "من هو الطبيب العربي صاحب كتاب القانون في الطب؟",
			OptionA:       "الرازي",
			OptionB:       "ابن النفيس",
			OptionC:       "ابن سينا",
			OptionD:       "الزهراوي",
			CorrectAnswer: "C",
			Category:      "علوم",
			Difficulty:    domain.DifficultyMedium,
			Points:        10,
		},
		{
			Text:          "ما هي أقدم جامعة في العالم ما زالت تعمل حتى اليوم وتقع في المغرب؟",
			OptionA:       "جامعة الأزهر",
			OptionB:       "جامعة القرويين",
			OptionC:       "جامعة الزيتونة",
			OptionD:       "بيت الحكمة",
			CorrectAnswer: "B",
			Category:      "تاريخ",
			Difficulty:    domain.DifficultyHard,
			Points:        10,
		},
		{
			Text:          "من هو مكتشف الدورة الدموية الصغرى؟",
			OptionA:       "ابن النفيس",
			OptionB:       "ابن سينا",
			OptionC:       "الرازي",
			OptionD:       "ابن زهر",
			CorrectAnswer: "A",
			Category:      "علوم",
			Difficulty:    domain.DifficultyExpert,
			Points:        10,
		},
		{
			Text:          "ما هو اسم الخليفة العباسي الذي أسس بيت الحكمة في بغداد؟",
			OptionA:       "هارون الرشيد",
			OptionB:       "المأمون",
			OptionC:       "المنصور",
			OptionD:       "المعتصم",
			CorrectAnswer: "B",
			Category:      "تاريخ",
			Difficulty:    domain.DifficultyExpert,
			Points:        10,
		},
		{
			Text:          "كم عدد الدول الأعضاء في جامعة الدول العربية؟",
			OptionA:       "20",
			OptionB:       "21",
			OptionC:       "22",
			OptionD:       "23",
			CorrectAnswer: "C",
			Category:      "جغرافيا",
			Difficulty:    domain.DifficultyMedium,
			Points:        10,
		},
		{
			Text:          "من هي الشاعرة العربية الملقبة بالخنساء؟",
			OptionA:       "تماضر بنت عمرو",
			OptionB:       "ولادة بنت المستكفي",
			OptionC:       "رابعة العدوية",
			OptionD:       "ليلى الأخيلية",
			CorrectAnswer: "A",
			Category:      "أدب",
			Difficulty:    domain.DifficultyHard,
			Points:        10,
		},
		{
			Text:          "ما هو اسم المضيق الذي يفصل بين المغرب وإسبانيا؟",
			OptionA:       "مضيق هرمز",
			OptionB:       "مضيق باب المندب",
			OptionC:       "مضيق جبل طارق",
			OptionD:       "قناة السويس",
			CorrectAnswer: "C",
			Category:      "جغرافيا",
			Difficulty:    domain.DifficultyEasy,
			Points:        10,
		},
		{
			Text:          "في أي عام افتتحت قناة السويس؟",
			OptionA:       "1859",
			OptionB:       "1869",
			OptionC:       "1879",
			OptionD:       "1889",
			CorrectAnswer: "B",
			Category:      "تاريخ",
			Difficulty:    domain.DifficultyHard,
			Points:        10,
		},
	}
}
