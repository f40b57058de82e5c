package models

// Review 餐食评价记录，只增不改
// review_date + meal + user_uuid 的唯一索引用于服务端二次去重，
// 客户端Cookie标记只是弱信号
type Review struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserUUID    string `gorm:"column:user_uuid;type:varchar(50);uniqueIndex:ux_user_date_meal,priority:1" json:"userUuid"`
	Timestamp   string `gorm:"type:varchar(20)" json:"timestamp"` // 格式 YYYY-MM-DD HH:MM:SS
	ReviewDate  string `gorm:"column:review_date;type:varchar(10);uniqueIndex:ux_user_date_meal,priority:2" json:"reviewDate"`
	Meal        string `gorm:"type:varchar(50);uniqueIndex:ux_user_date_meal,priority:3" json:"meal"`
	Rating      int    `json:"rating"`
	Liked       string `gorm:"type:text" json:"liked"`
	Disliked    string `gorm:"type:text" json:"disliked"`
	WhatTheyAte string `gorm:"column:what_they_ate;type:text" json:"whatTheyAte"`
}

// TableName 指定表名
func (Review) TableName() string { return "reviews" }
