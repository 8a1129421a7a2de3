package initializers

import (
	"context"

	"eval-board-backend/config"
	"eval-board-backend/fiberlog"
	boardhandler "eval-board-backend/lib/board"
	candidatehandler "eval-board-backend/lib/candidate"
	jobhandler "eval-board-backend/lib/job"
	notificationhandler "eval-board-backend/lib/notification"
	assignmenthandler "eval-board-backend/lib/test-assignment"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	// порядок важен: обработчик кандидатов использует обработчик вакансий,
	// обработчик комиссий - все остальные
	jobhandler.NewHandler()
	candidatehandler.NewHandler()
	assignmenthandler.NewHandler()
	notificationhandler.NewHandler()
	boardhandler.NewHandler()
}
