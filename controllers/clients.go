package controllers

import (
	"context"
	"net/http"

	"github.com/BerniceZTT/client_crm/models"
	"github.com/BerniceZTT/client_crm/utils"

	"github.com/gin-gonic/gin"
)

// GetClients 客户列表，支持 ?search= 模糊搜索
func GetClients(c *gin.Context) {
	search := c.Query("search")
	respondScreen(c, func(ctx context.Context) ([]models.ClientSummary, error) {
		return svc.ListClients(ctx, search)
	})
}

// GetClientDetails 客户详情页
func GetClientDetails(c *gin.Context) {
	id := c.Param("id")
	respondScreen(c, func(ctx context.Context) (models.ClientDetailResponse, error) {
		return svc.ClientDetails(ctx, id)
	})
}

// CreateClient 新增客户
func CreateClient(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input models.ClientInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	client, err := svc.CreateClient(ctx, user, input)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, client, "客户创建成功", http.StatusCreated)
}

// UpdateClient 更新客户
func UpdateClient(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input models.ClientInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := svc.UpdateClient(ctx, user, c.Param("id"), input); err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "客户更新成功")
}

// DeleteClient 删除客户及其全部关联数据
func DeleteClient(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := svc.DeleteClient(ctx, user, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "客户删除成功")
}

// AddNote 添加客户备注
func AddNote(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input models.NoteInput
	if !bindJSON(c, &input) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	note, err := svc.AddNote(ctx, user, c.Param("id"), input)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, note, "备注已添加", http.StatusCreated)
}

// DeleteNote 删除备注
func DeleteNote(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := svc.DeleteNote(ctx, user, c.Param("noteId")); err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "备注已删除")
}
