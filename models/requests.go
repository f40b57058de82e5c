package models

// SubmitReviewRequest 提交评价请求结构体
type SubmitReviewRequest struct {
	Rating      int    `json:"rating" binding:"required"`
	Liked       string `json:"liked"`
	Disliked    string `json:"disliked"`
	WhatTheyAte string `json:"whatTheyAte"`
}

// AdminLoginRequest 管理后台登录请求结构体
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}
