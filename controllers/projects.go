package controllers

import (
	"context"
	"net/http"

	"github.com/BerniceZTT/client_crm/models"
	"github.com/BerniceZTT/client_crm/service"
	"github.com/BerniceZTT/client_crm/utils"

	"github.com/gin-gonic/gin"
)

// GetProjects 项目列表，?status= 按状态筛选
func GetProjects(c *gin.Context) {
	filter, err := service.ValidProjectFilter(c.Query("status"))
	if err != nil {
		handleError(c, err)
		return
	}
	respondScreen(c, func(ctx context.Context) (models.ProjectListResponse, error) {
		return svc.ListProjects(ctx, filter)
	})
}

// CreateProject 新增项目
func CreateProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input models.ProjectInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	project, err := svc.CreateProject(ctx, user, input)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, project, "项目创建成功", http.StatusCreated)
}

// UpdateProject 更新项目
func UpdateProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input models.ProjectInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := svc.UpdateProject(ctx, user, c.Param("id"), input); err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "项目更新成功")
}

// DeleteProject 删除项目及其收款记录
func DeleteProject(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := svc.DeleteProject(ctx, user, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "项目删除成功")
}
