package models

import "time"

// OperationLog 操作日志结构体
type OperationLog struct {
	ID            string      `json:"id" bson:"_id"`
	RequestID     string      `json:"requestId" bson:"requestId"`
	Method        string      `json:"method" bson:"method"`
	Path          string      `json:"path" bson:"path"`
	OperatorID    string      `json:"operatorId" bson:"operatorId"`
	OperatorEmail string      `json:"operatorEmail" bson:"operatorEmail"`
	RequestBody   interface{} `json:"requestBody" bson:"requestBody"`
	StatusCode    int         `json:"statusCode" bson:"statusCode"`
	Success       bool        `json:"success" bson:"success"`
	ErrorMessage  string      `json:"errorMessage,omitempty" bson:"errorMessage,omitempty"`
	OperationTime time.Time   `json:"operationTime" bson:"operationTime"`
	ResponseTime  int64       `json:"responseTime" bson:"responseTime"` // 毫秒
	IPAddress     string      `json:"ipAddress" bson:"ipAddress"`
	UserAgent     string      `json:"userAgent" bson:"userAgent"`
}
