package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"eval-board-backend/controllers"
	assignmenthandler "eval-board-backend/lib/test-assignment"
	apimodels "eval-board-backend/models/api"
	assignmentapimodels "eval-board-backend/models/api/assignment"
)

type assignmentApiController struct {
	controllers.BaseAPIController
}

func InitAssignmentApiRouters(app *fiber.App) {
	controller := assignmentApiController{}
	app.Route("assignments", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Put(":assignment_id/change_status", controller.changeStatus)
	})
}

// @Summary Список назначений тестов
// @Tags Назначение теста
// @Description Список назначений тестов с фильтром и пагинацией
// @Param	body body	 assignmentapimodels.AssignmentFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]assignmentapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignments/list [post]
func (c *assignmentApiController) list(ctx *fiber.Ctx) error {
	var filter assignmentapimodels.AssignmentFilter
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := assignmenthandler.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка назначений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Смена статуса назначения
// @Tags Назначение теста
// @Description Смена статуса назначения теста, при завершении фиксируются результаты
// @Param	body body	 assignmentapimodels.StatusChangeData	true	"request body"
// @Param   assignment_id          		path    int  				    	true         "assignment ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignments/{assignment_id}/change_status [put]
func (c *assignmentApiController) changeStatus(ctx *fiber.Ctx) error {
	assignmentID, err := c.GetIntParam(ctx, "assignment_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assignmentapimodels.StatusChangeData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = assignmenthandler.Instance.ChangeStatus(assignmentID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены статуса назначения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
