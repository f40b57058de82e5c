package models

// FormStateResponse 表单状态响应结构体，前端据此渲染表单
type FormStateResponse struct {
	Title          string `json:"title"`
	CurrentMeal    string `json:"currentMeal"`
	GateState      string `json:"gateState"` // allowed / already_submitted / not_mealtime
	Message        string `json:"message,omitempty"`
	FieldsDisabled bool   `json:"fieldsDisabled"`
	RatingMin      int    `json:"ratingMin"`
	RatingMax      int    `json:"ratingMax"`
	LikedMaxLen    int    `json:"likedMaxLen"`
	DislikedMaxLen int    `json:"dislikedMaxLen"`
	AteListEnabled bool   `json:"ateListEnabled"`
	AteListMaxLen  int    `json:"ateListMaxLen,omitempty"`
}

// ReviewResponse 评价记录响应结构体
type ReviewResponse struct {
	ID          uint   `json:"id"`
	UserUUID    string `json:"userUuid"`
	Timestamp   string `json:"timestamp"`
	Meal        string `json:"meal"`
	Rating      int    `json:"rating"`
	Liked       string `json:"liked"`
	Disliked    string `json:"disliked"`
	WhatTheyAte string `json:"whatTheyAte,omitempty"`
}

// WordCount 词频条目
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// WordFreqResponse 词频聚合响应结构体，词云页面的数据源
type WordFreqResponse struct {
	Field string      `json:"field"`
	Words []WordCount `json:"words"`
}

// AdminLoginResponse 管理后台登录响应结构体
type AdminLoginResponse struct {
	Token string `json:"token"`
}
