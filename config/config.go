package config

import (
	"fmt"
	"github.com/spf13/viper"
)

// Config 存储所有配置信息
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`

	// 数据库配置
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	// Redis配置
	RedisHost     string `mapstructure:"REDIS_HOST"`
	RedisPort     string `mapstructure:"REDIS_PORT"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// 食堂时区与餐段时间表文件
	Timezone     string `mapstructure:"DINING_TIMEZONE"`
	ScheduleFile string `mapstructure:"MEAL_SCHEDULE_FILE"`

	// 评价校验规则
	RatingMin          int    `mapstructure:"RATING_MIN"`
	RatingMax          int    `mapstructure:"RATING_MAX"`
	LikedMinLen        int    `mapstructure:"LIKED_MIN_LEN"`
	LikedMaxLen        int    `mapstructure:"LIKED_MAX_LEN"`
	DislikedMinLen     int    `mapstructure:"DISLIKED_MIN_LEN"`
	DislikedMaxLen     int    `mapstructure:"DISLIKED_MAX_LEN"`
	AteListEnabled     bool   `mapstructure:"ATE_LIST_ENABLED"`
	AteListMinLen      int    `mapstructure:"ATE_LIST_MIN_LEN"`
	AteListMaxLen      int    `mapstructure:"ATE_LIST_MAX_LEN"`
	ProhibitedWordFile string `mapstructure:"PROHIBITED_WORD_FILE"`

	// 身份Cookie配置
	IdentityCookieDays int `mapstructure:"IDENTITY_COOKIE_DAYS"`

	// 语言可读性检查（可选，默认关闭）
	LanguageCheckEnabled bool   `mapstructure:"LANGUAGE_CHECK_ENABLED"`
	ExpectedLanguage     string `mapstructure:"EXPECTED_LANGUAGE"`

	// Deepseek API配置（语言检查用）
	DeepseekAPIKey      string `mapstructure:"DEEPSEEK_API_KEY"`
	DeepseekAPIEndpoint string `mapstructure:"DEEPSEEK_API_ENDPOINT"`

	// 管理后台配置
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`
}

// LoadConfig 从环境变量或配置文件加载配置
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	// 默认值，和线上表单行为保持一致
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DINING_TIMEZONE", "US/Eastern")
	viper.SetDefault("MEAL_SCHEDULE_FILE", "schedule.yaml")
	viper.SetDefault("RATING_MIN", 1)
	viper.SetDefault("RATING_MAX", 5)
	viper.SetDefault("LIKED_MIN_LEN", 10)
	viper.SetDefault("LIKED_MAX_LEN", 260)
	viper.SetDefault("DISLIKED_MIN_LEN", 1)
	viper.SetDefault("DISLIKED_MAX_LEN", 260)
	viper.SetDefault("ATE_LIST_ENABLED", true)
	viper.SetDefault("ATE_LIST_MIN_LEN", 10)
	viper.SetDefault("ATE_LIST_MAX_LEN", 120)
	viper.SetDefault("PROHIBITED_WORD_FILE", "prohibited_words.txt")
	viper.SetDefault("IDENTITY_COOKIE_DAYS", 300)
	viper.SetDefault("LANGUAGE_CHECK_ENABLED", false)
	viper.SetDefault("EXPECTED_LANGUAGE", "en")

	err = viper.ReadInConfig()
	if err != nil {
		// 允许配置文件不存在，此时会从环境变量中读取
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	return
}

// GetDBConnString 返回数据库连接字符串
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// GetRedisConnString 返回Redis连接字符串
func (c *Config) GetRedisConnString() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
