package controllers

import (
	"errors"
	"time"

	"github.com/BerniceZTT/gwsample_end/middleware"
	"github.com/BerniceZTT/gwsample_end/service"
	"github.com/BerniceZTT/gwsample_end/utils"

	"github.com/gin-gonic/gin"
)

var (
	registry        *service.SessionRegistry
	tokenSecret     []byte
	tokenTTL        time.Duration
	regenerateCount = service.DefaultRegenerateCount
)

// Setup 注入控制器依赖
func Setup(r *service.SessionRegistry, secret []byte, ttl time.Duration, regenerate int) {
	registry = r
	tokenSecret = secret
	tokenTTL = ttl
	if regenerate > 0 {
		regenerateCount = regenerate
	}
}

// currentSession 取出当前会话，不存在时直接返回401
func currentSession(c *gin.Context) (*service.Session, bool) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return nil, false
	}
	return session, true
}

// respondError 将服务层错误映射为HTTP响应
func respondError(c *gin.Context, err error, resource string) {
	var remoteErr *service.RemoteError
	switch {
	case errors.Is(err, service.ErrBindingUnavailable):
		utils.HandleError(c, utils.CreateUnavailableError("Main table not accessible!"))
	case errors.Is(err, service.ErrNotFound):
		utils.HandleError(c, utils.CreateNotFoundError(resource))
	case errors.As(err, &remoteErr):
		utils.HandleError(c, utils.CreateBackendError(service.RemoteErrorMessage(err, err.Error())))
	default:
		utils.HandleError(c, err)
	}
}
