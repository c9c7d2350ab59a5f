package models

import "time"

// 文件分类，上传时可选
const (
	FileTypeDocument = "document"
	FileTypeContract = "contract"
	FileTypeInvoice  = "invoice"
	FileTypeImage    = "image"
	FileTypeOther    = "other"
)

// FileRecord 客户文件记录，实际内容存放在对象存储
type FileRecord struct {
	ID         string    `json:"id" bson:"_id"`
	ClientID   string    `json:"client_id" bson:"client_id"`
	ProjectID  *string   `json:"project_id" bson:"project_id"`
	FileName   string    `json:"file_name" bson:"file_name"`
	FilePath   string    `json:"file_path" bson:"file_path"`
	FileType   string    `json:"file_type" bson:"file_type"`
	FileSize   *int64    `json:"file_size" bson:"file_size"`
	UploadedAt time.Time `json:"uploaded_at" bson:"uploaded_at"`
	UploadedBy *string   `json:"uploaded_by" bson:"uploaded_by"`

	// 关联查询填充
	Client *Client `json:"clients,omitempty" bson:"clients,omitempty"`
}

// FileManagerResponse 文件管理页数据
type FileManagerResponse struct {
	Files   []FileRecord `json:"files"`
	Clients []Client     `json:"clients"`
}
