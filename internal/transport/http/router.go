package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/pafiast/alumni-network/internal/handlers"
	midauth "github.com/pafiast/alumni-network/internal/middleware/auth"
)

type Deps struct {
	DB                 *gorm.DB
	AuthHandler        *handlers.AuthHandler
	ProfileHandler     *handlers.ProfileHandler
	InternshipHandler  *handlers.InternshipHandler
	ProjectHandler     *handlers.ProjectHandler
	JobHandler         *handlers.JobHandler
	AchievementHandler *handlers.AchievementHandler
	SkillHandler       *handlers.SkillHandler
	EducationHandler   *handlers.EducationHandler
	ECardHandler       *handlers.ECardHandler
	AttestationHandler *handlers.AttestationHandler
	SearchHandler      *handlers.SearchHandler
	AdminHandler       *handlers.AdminHandler
	TokenMiddleware    *midauth.TokenMiddleware
	UploadDir          string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	if d.UploadDir != "" {
		e.Static("/uploads", d.UploadDir)
	}

	v1 := e.Group("/api/v1")

	v1.POST("/signup", d.AuthHandler.Signup)
	v1.POST("/login", d.AuthHandler.Login)
	v1.GET("/search", d.SearchHandler.Search)

	// Public profile views, verified accounts only.
	v1.GET("/profiles/:registrationNumber", d.ProfileHandler.GetPublicProfile)
	v1.GET("/profiles/:registrationNumber/internships", d.InternshipHandler.ListPublic)
	v1.GET("/profiles/:registrationNumber/projects", d.ProjectHandler.ListPublic)
	v1.GET("/profiles/:registrationNumber/achievements", d.AchievementHandler.ListPublic)
	v1.GET("/profiles/:registrationNumber/skills", d.SkillHandler.GetPublic)
	v1.GET("/profiles/:registrationNumber/education", d.EducationHandler.GetPublic)

	authed := v1.Group("", d.TokenMiddleware.RequireLogin)

	authed.GET("/profile", d.ProfileHandler.GetOwnProfile)
	authed.PUT("/profile", d.ProfileHandler.UpdateOwnProfile)

	authed.GET("/education", d.EducationHandler.Get)
	authed.POST("/education", d.EducationHandler.Save)

	authed.GET("/skills", d.SkillHandler.Get)
	authed.POST("/skills", d.SkillHandler.Replace)

	authed.GET("/internships", d.InternshipHandler.List)
	authed.POST("/internships", d.InternshipHandler.Create)
	authed.PUT("/internships/:id", d.InternshipHandler.Update)
	authed.DELETE("/internships/:id", d.InternshipHandler.Delete)

	authed.GET("/projects", d.ProjectHandler.List)
	authed.POST("/projects", d.ProjectHandler.Create)
	authed.PUT("/projects/:id", d.ProjectHandler.Update)
	authed.DELETE("/projects/:id", d.ProjectHandler.Delete)

	authed.GET("/jobs", d.JobHandler.List)
	authed.POST("/jobs", d.JobHandler.Create)
	authed.PUT("/jobs/:id", d.JobHandler.Update)
	authed.DELETE("/jobs/:id", d.JobHandler.Delete)

	authed.GET("/achievements", d.AchievementHandler.List)
	authed.POST("/achievements", d.AchievementHandler.Create)
	authed.PUT("/achievements/:id", d.AchievementHandler.Update)
	authed.DELETE("/achievements/:id", d.AchievementHandler.Delete)

	authed.GET("/ecard/status", d.ECardHandler.Status)
	authed.POST("/ecard/request", d.ECardHandler.Request)
	authed.GET("/ecard/view", d.ECardHandler.View)
	authed.GET("/ecard/download", d.ECardHandler.Download)

	authed.POST("/attestations", d.AttestationHandler.Submit)

	admin := v1.Group("/admin", d.TokenMiddleware.RequireLogin, d.TokenMiddleware.RequireAdmin)

	admin.GET("/pending", d.AdminHandler.ListPending)
	admin.POST("/verify/:id", d.AdminHandler.Verify)
	admin.DELETE("/reject/:id", d.AdminHandler.Reject)
	admin.POST("/ecards/:id/approve", d.AdminHandler.ApproveECard)
	admin.POST("/ecards/:id/reject", d.AdminHandler.RejectECard)
}
