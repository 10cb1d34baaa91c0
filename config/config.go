package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// 后端类型
const (
	BackendMongo = "mongo"
	BackendOData = "odata"
)

// Config 应用配置
type Config struct {
	Port     int
	Debug    bool
	Backend  string
	MongoURI string
	MongoDB  string

	ODataURL      string
	ODataUser     string
	ODataPassword string
	ODataTimeout  time.Duration

	JWTKey            string
	SessionTTL        time.Duration
	InitialGroupField string
	CORSOrigins       string
	RegenerateCount   int
	SeedOnStart       bool
}

// LoadConfig 从 .env 和环境变量加载配置
func LoadConfig() *Config {
	// .env 不存在时忽略，已有环境变量优先
	_ = godotenv.Load()

	return &Config{
		Port:     getEnvInt("PORT", 8080),
		Debug:    getEnv("GIN_MODE", "debug") == "debug",
		Backend:  getEnv("BACKEND", BackendMongo),
		MongoURI: getEnv("MONGO_URI", "mongodb://127.0.0.1:27017/gwsample"),
		MongoDB:  getEnv("MONGO_DB", "gwsample"),

		ODataURL:      getEnv("ODATA_URL", "https://sapes5.sapdevcenter.com/sap/opu/odata/iwbep/GWSAMPLE_BASIC"),
		ODataUser:     getEnv("ODATA_USER", ""),
		ODataPassword: getEnv("ODATA_PASSWORD", ""),
		ODataTimeout:  getEnvDuration("ODATA_TIMEOUT", 30*time.Second),

		JWTKey:            getEnv("JWT_KEY", "your-secret-key"), // 实际环境应替换为安全密钥
		SessionTTL:        getEnvDuration("SESSION_TTL", 8*time.Hour),
		InitialGroupField: getEnv("INITIAL_GROUP_FIELD", "DeliveryStatus"),
		CORSOrigins:       getEnv("CORS_ORIGINS", "http://localhost:8080,http://localhost:5173"),
		RegenerateCount:   getEnvInt("REGENERATE_COUNT", 50),
		SeedOnStart:       getEnv("SEED_ON_START", "true") == "true",
	}
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt 获取整数环境变量，解析失败时返回默认值
func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvDuration 获取时长环境变量，如 30s、8h
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
