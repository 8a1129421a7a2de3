package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"eval-board-backend/controllers"
	boardhandler "eval-board-backend/lib/board"
	apimodels "eval-board-backend/models/api"
	boardapimodels "eval-board-backend/models/api/board"
)

type boardApiController struct {
	controllers.BaseAPIController
}

// идентификатор инициатора передается фронтом, авторизация вне этого сервиса
func actorID(ctx *fiber.Ctx) string {
	return ctx.Get("X-Actor-ID")
}

func InitBoardApiRouters(app *fiber.App) {
	controller := boardApiController{}
	app.Route("boards", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Route("candidates", func(candidateRoute fiber.Router) {
				candidateRoute.Get("", controller.getCandidates)
				candidateRoute.Post("", controller.assignCandidates)
				candidateRoute.Route(":candidate_id", func(candidateIDRoute fiber.Router) {
					candidateIDRoute.Delete("", controller.removeCandidate)
					candidateIDRoute.Put("assessment", controller.saveAssessment)
				})
			})
		})
	})
}

// @Summary Создание оценочной комиссии
// @Tags Комиссия
// @Description Создание комиссии по набору вакансий, кандидаты и назначения тестов формируются автоматически
// @Param	body body	 boardapimodels.BoardData	true	"request body"
// @Success 201 {object} apimodels.Response{data=boardapimodels.BoardView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/boards [post]
func (c *boardApiController) create(ctx *fiber.Ctx) error {
	var payload boardapimodels.BoardData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, hMsg, err := boardhandler.Instance.Create(payload, actorID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания комиссии")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(view))
}

// @Summary Список комиссий
// @Tags Комиссия
// @Description Список комиссий с фильтром и пагинацией
// @Param	body body	 boardapimodels.BoardFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]boardapimodels.BoardView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/boards/list [post]
func (c *boardApiController) list(ctx *fiber.Ctx) error {
	var filter boardapimodels.BoardFilter
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := boardhandler.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка комиссий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Получение по ИД
// @Tags Комиссия
// @Description Получение комиссии по ИД
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=boardapimodels.BoardView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/boards/{id} [get]
func (c *boardApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := boardhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения комиссии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Обновление
// @Tags Комиссия
// @Description Обновление атрибутов комиссии без перезапуска формирования
// @Param	body body	 boardapimodels.BoardUpdateData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/boards/{id} [put]
func (c *boardApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload boardapimodels.BoardUpdateData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = boardhandler.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения комиссии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление
// @Tags Комиссия
// @Description Удаление комиссии с каскадным удалением оценок
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/boards/{id} [delete]
func (c *boardApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = boardhandler.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления комиссии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Кандидаты комиссии
// @Tags Комиссия
// @Description Кандидаты комиссии со статусами оценки и результатами тестов
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]boardapimodels.BoardCandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/boards/{id}/candidates [get]
func (c *boardApiController) getCandidates(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := boardhandler.Instance.GetBoardCandidates(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения кандидатов комиссии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Добавление кандидатов
// @Tags Комиссия
// @Description Добавление кандидатов в существующую комиссию, набор вакансий расширяется при необходимости
// @Param	body body	 boardapimodels.AssignCandidatesData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=boardapimodels.AssignResult}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/boards/{id}/candidates [post]
func (c *boardApiController) assignCandidates(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload boardapimodels.AssignCandidatesData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, hMsg, err := boardhandler.Instance.AssignCandidates(id, payload, actorID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления кандидатов в комиссию")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponseWithMsg(hMsg, result))
}

// @Summary Исключение кандидата
// @Tags Комиссия
// @Description Исключение кандидата из комиссии с удалением его оценок
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   candidate_id		path    string  				    	true         "candidate ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/boards/{id}/candidates/{candidate_id} [delete]
func (c *boardApiController) removeCandidate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	candidateID := ctx.Params("candidate_id")
	if candidateID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор кандидата"))
	}
	err = boardhandler.Instance.RemoveCandidate(id, candidateID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка исключения кандидата из комиссии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Сохранение оценки
// @Tags Комиссия
// @Description Сохранение оценки кандидата членом комиссии
// @Param	body body	 boardapimodels.AssessmentData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   candidate_id		path    string  				    	true         "candidate ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/boards/{id}/candidates/{candidate_id}/assessment [put]
func (c *boardApiController) saveAssessment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	candidateID := ctx.Params("candidate_id")
	if candidateID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор кандидата"))
	}
	var payload boardapimodels.AssessmentData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = boardhandler.Instance.SaveAssessment(id, candidateID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения оценки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
