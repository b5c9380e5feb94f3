package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/school-admin-api/internal/middleware"
	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
	"github.com/noah-isme/school-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/school-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/school-admin-api/pkg/middleware/requestid"
)

// RouterConfig carries the HTTP surface settings.
type RouterConfig struct {
	APIPrefix      string
	CookieName     string
	CookieSecure   bool
	AllowedOrigins []string
	EnableDocs     bool
}

// Handlers groups every endpoint handler.
type Handlers struct {
	Auth      *AuthHandler
	Setup     *SetupHandler
	Dashboard *DashboardHandler
	Staff     *StaffHandler
	Profile   *ProfileHandler
	Activity  *ActivityHandler
	Media     *MediaHandler
	Settings  *SettingsHandler
	Terms     *TermHandler
	Catalog   *CatalogHandler
	Subjects  *SubjectHandler
	Schedules *ScheduleHandler
	Students  *StudentHandler
	Grades    *GradeHandler
	Reports   *ReportHandler
	Metrics   *MetricsHandler
}

// RouterDeps are the non-handler collaborators of the router.
type RouterDeps struct {
	Sessions   middleware.SessionValidator
	Metrics    *service.MetricsService
	Invalidate func(ctx context.Context)
	Logger     *zap.Logger
}

// NewRouter builds the gin engine serving the API.
func NewRouter(cfg RouterConfig, h Handlers, deps RouterDeps) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	invalidate := deps.Invalidate
	if invalidate == nil {
		invalidate = func(context.Context) {}
	}
	prefix := "/" + strings.Trim(cfg.APIPrefix, "/")
	if prefix == "/" {
		prefix = "/api"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(corsmiddleware.New(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if cfg.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	r.GET("/media/*token", h.Media.Serve)

	api := r.Group(prefix)
	api.POST("/login", h.Auth.Login)
	api.GET("/setup", h.Setup.Status)
	api.POST("/setup", h.Setup.Create)

	secured := api.Group("")
	cookie := CookieSettings{Name: cfg.CookieName, Secure: cfg.CookieSecure}
	secured.Use(middleware.RequireSession(deps.Sessions, cfg.CookieName, func(c *gin.Context, token string, session *models.Session) {
		SetSessionCookie(c, cookie, token, session)
	}, log))

	secured.POST("/logout", h.Auth.Logout)
	secured.GET("/auth/session", h.Auth.Session)
	secured.GET("/dashboard", h.Dashboard.Summary)

	staff := secured.Group("/staff")
	staff.GET("", h.Staff.List)
	adminOnly := staff.Group("", middleware.RequireRoles(models.RoleAdmin), middleware.InvalidateOnWrite(invalidate))
	adminOnly.POST("", h.Staff.CreateEncrypted)
	adminOnly.POST("/add_staff", h.Staff.Create)

	secured.POST("/profile/update_info", h.Profile.UpdateInfo)
	secured.GET("/profile/activity", h.Activity.Recent)
	secured.GET("/update_profile_picture", h.Profile.Picture)
	secured.POST("/update_profile_picture", h.Profile.SetPicture)
	secured.GET("/public_url", h.Profile.PublicURL)
	secured.GET("/pic_api", h.Media.Lookup)
	secured.POST("/pic_api", h.Media.Upload)

	secured.GET("/settings", h.Settings.Get)
	secured.POST("/settings", h.Settings.Save)
	secured.PUT("/settings", h.Settings.Save)

	terms := secured.Group("/academic-terms")
	terms.GET("", h.Terms.List)
	terms.POST("", h.Terms.Create)
	terms.GET("/active", h.Terms.Active)
	terms.PUT("/:id", h.Terms.Update)
	terms.DELETE("/:id", h.Terms.Delete)
	terms.POST("/:id/activate", h.Terms.Activate)

	secured.GET("/courses", h.Catalog.ListCourses)
	secured.POST("/courses", h.Catalog.CreateCourse)
	secured.DELETE("/courses/:id", h.Catalog.DeleteCourse)
	secured.GET("/year-levels", h.Catalog.ListYearLevels)
	secured.POST("/year-levels", h.Catalog.CreateYearLevel)
	secured.GET("/sections", h.Catalog.ListSections)
	secured.POST("/sections", h.Catalog.CreateSection)
	secured.DELETE("/sections/:id", h.Catalog.DeleteSection)

	subjects := secured.Group("/subjects")
	subjects.GET("", h.Subjects.List)
	subjects.POST("", h.Subjects.Create)
	subjects.PATCH("/:id", h.Subjects.Update)
	subjects.DELETE("/:id", h.Subjects.Delete)

	schedules := secured.Group("/schedules", middleware.InvalidateOnWrite(invalidate))
	schedules.GET("", h.Schedules.List)
	schedules.POST("", h.Schedules.Create)
	schedules.PUT("/:id", h.Schedules.Update)
	schedules.DELETE("/:id", h.Schedules.Delete)

	students := secured.Group("/students")
	studentWrites := students.Group("", middleware.InvalidateOnWrite(invalidate))
	students.GET("", h.Students.List)
	studentWrites.POST("", h.Students.Create)
	students.GET("/:studNo", h.Students.Get)
	students.PATCH("/:studNo", h.Students.Update)
	studentWrites.DELETE("/:studNo", h.Students.Delete)
	students.GET("/:studNo/subjects", h.Grades.Enrolled)
	students.POST("/:studNo/subjects", h.Grades.Enroll)
	students.DELETE("/:studNo/subjects/:subjectId", h.Grades.Unenroll)
	students.PUT("/:studNo/grades", h.Grades.Record)
	students.GET("/:studNo/report-card", h.Reports.ReportCard)

	secured.GET("/grade", h.Grades.List)

	return r
}
