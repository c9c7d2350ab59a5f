package controllers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path"

	"github.com/BerniceZTT/client_crm/models"
	"github.com/BerniceZTT/client_crm/service"
	"github.com/BerniceZTT/client_crm/utils"

	"github.com/gin-gonic/gin"
)

// GetFiles 文件管理页
func GetFiles(c *gin.Context) {
	respondScreen(c, svc.FileManager)
}

// UploadFile 处理 multipart 文件上传，字段: file, client_id, project_id, file_type
func UploadFile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	// 请求体整体限制，额外留出表单字段的空间
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes+1<<20)

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handleError(c, fileTooLarge())
			return
		}
		utils.HandleError(c, utils.CreateBadRequestError("请选择要上传的文件"))
		return
	}
	if header.Size > maxUploadBytes {
		handleError(c, fileTooLarge())
		return
	}

	file, err := header.Open()
	if err != nil {
		handleError(c, err)
		return
	}
	defer file.Close()

	input := service.UploadInput{
		ClientID:    c.PostForm("client_id"),
		FileType:    c.PostForm("file_type"),
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}
	if projectID := c.PostForm("project_id"); projectID != "" {
		input.ProjectID = &projectID
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	record, err := svc.UploadFile(ctx, user, input)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, record, "文件上传成功", http.StatusCreated)
}

func fileTooLarge() error {
	return utils.CreateBadRequestError(fmt.Sprintf("文件大小超出限制，最大支持 %dMB", maxUploadBytes>>20))
}

// DownloadFile 下载文件内容
func DownloadFile(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	record, body, err := svc.DownloadFile(ctx, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	defer body.Close()

	size := int64(-1)
	if record.FileSize != nil {
		size = *record.FileSize
	}
	c.DataFromReader(http.StatusOK, size, contentTypeOf(record), body, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": record.FileName}),
	})
}

func contentTypeOf(record *models.FileRecord) string {
	if byExt := mime.TypeByExtension(path.Ext(record.FileName)); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}

// DeleteFile 删除文件及其存储对象
func DeleteFile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := svc.DeleteFile(ctx, user, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	utils.SuccessResponse(c, nil, "文件已删除")
}
