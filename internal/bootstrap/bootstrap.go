package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	attemptinadapter "bioq/internal/modules/attempt/adapter/in"
	attemptoutadapter "bioq/internal/modules/attempt/adapter/out"
	attemptout "bioq/internal/modules/attempt/port/out"
	attemptservice "bioq/internal/modules/attempt/service"
	attemptusecase "bioq/internal/modules/attempt/usecase"
	bankinadapter "bioq/internal/modules/bank/adapter/in"
	bankoutadapter "bioq/internal/modules/bank/adapter/out"
	bankservice "bioq/internal/modules/bank/service"
	bankusecase "bioq/internal/modules/bank/usecase"
	quizinadapter "bioq/internal/modules/quiz/adapter/in"
	quizoutadapter "bioq/internal/modules/quiz/adapter/out"
	quizservice "bioq/internal/modules/quiz/service"
	quizusecase "bioq/internal/modules/quiz/usecase"
	"bioq/internal/platform/clock"
	"bioq/internal/platform/config"
	"bioq/internal/platform/datekey"
	"bioq/internal/platform/id"
	uiapp "bioq/internal/ui/app"
)

type App struct {
	BankCLI    bankinadapter.CLIHandler
	QuizCLI    quizinadapter.CLIHandler
	QuizTUI    quizinadapter.TUIHandler
	AttemptCLI attemptinadapter.CLIHandler

	clk clock.Clock
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	bankProjector, err := bankoutadapter.NewSQLiteBankProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new bank projector: %w", err)
	}
	bankSvc := bankservice.NewBankService(
		bankoutadapter.NewFilePackStore(cfg.BankPath),
		bankoutadapter.NewHTTPPackClient(),
		bankProjector,
	)
	bankUC := bankusecase.NewInteractor(bankSvc)

	attemptStore, err := attemptoutadapter.NewSQLiteAttemptStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new attempt store: %w", err)
	}
	profileStore := attemptoutadapter.NewFileProfileStore(cfg.DataPath)

	// Remote collaborators are optional: with no api_base_url configured the
	// app records attempts locally only.
	var submit attemptout.SubmitClient
	var identity attemptout.IdentityClient
	if cfg.Settings.APIBaseURL != "" {
		profile, err := profileStore.Load(context.Background())
		if err != nil {
			return nil, fmt.Errorf("load profile: %w", err)
		}
		submit = attemptoutadapter.NewHTTPSubmitClient(cfg.Settings.APIBaseURL, profile.Token)
		identity = attemptoutadapter.NewHTTPIdentityClient(cfg.Settings.APIBaseURL)
	}
	attemptSvc := attemptservice.NewAttemptService(clk, ids, profileStore, identity)
	attemptUC := attemptusecase.NewInteractor(attemptSvc, attemptStore, submit)

	quizSvc := quizservice.NewQuizService(clk, ids, cfg.Settings.WeeklyCount, cfg.Settings.TimeBudgetMs)
	quizUC := quizusecase.NewInteractor(
		quizSvc,
		bankUC,
		quizoutadapter.NewFileSessionStore(cfg.DataPath),
		quizoutadapter.NewFilePlayedMarker(cfg.DataPath),
		quizoutadapter.NewAttemptSinkAdapter(attemptUC),
	)

	return &App{
		BankCLI:    bankinadapter.NewCLIHandler(bankUC),
		QuizCLI:    quizinadapter.NewCLIHandler(quizUC),
		QuizTUI:    quizinadapter.NewTUIHandler(quizUC),
		AttemptCLI: attemptinadapter.NewCLIHandler(attemptUC),
		clk:        clk,
	}, nil
}

func RunTUI(app *App) error {
	currentWeek := datekey.Week(app.clk.Now())
	model := uiapp.NewModel(
		app.QuizTUI,
		app.QuizTUI,
		app.BankCLI,
		app.BankCLI,
		app.AttemptCLI,
		app.AttemptCLI,
		currentWeek,
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
