package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pintando7/escolinha/internal/app/controllers"
	"github.com/pintando7/escolinha/internal/middleware"
	"github.com/pintando7/escolinha/internal/pkg/realtime"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	mealLogController *controllers.MealLogController,
	appointmentController *controllers.AppointmentController,
	goalController *controllers.GoalController,
	expenseController *controllers.ExpenseController,
	eventController *controllers.EventController,
	dashboardController *controllers.DashboardController,
	deviceController *controllers.DeviceController,
	realtimeHandler *realtime.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.GET("/session", authController.Session)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Realtime sync stream
		authenticated.GET("/realtime", realtimeHandler.HandleConnection)

		students := authenticated.Group("/students")
		{
			students.GET("", studentController.ListStudents)
			students.POST("", studentController.CreateStudent)
			students.GET("/:id", studentController.GetStudentByID)
			students.PUT("/:id", studentController.UpdateStudent)
			students.DELETE("/:id", studentController.DeleteStudent)
		}

		logs := authenticated.Group("/logs")
		{
			logs.GET("", mealLogController.ListLogs)
			logs.POST("", mealLogController.CreateLog)
		}

		appointments := authenticated.Group("/appointments")
		{
			appointments.GET("", appointmentController.ListAppointments)
			appointments.POST("", appointmentController.CreateAppointment)
			appointments.DELETE("/:id", appointmentController.DeleteAppointment)
		}

		goals := authenticated.Group("/goals")
		{
			goals.GET("", goalController.ListGoals)
			goals.POST("", goalController.CreateGoal)
			goals.PATCH("/:id/toggle", goalController.ToggleGoal)
			goals.DELETE("/:id", goalController.DeleteGoal)
		}

		expenses := authenticated.Group("/expenses")
		{
			expenses.GET("", expenseController.ListExpenses)
			expenses.POST("", expenseController.CreateExpense)
			expenses.PUT("/:id", expenseController.UpdateExpense)
			expenses.DELETE("/:id", expenseController.DeleteExpense)
		}

		events := authenticated.Group("/events")
		{
			events.GET("", eventController.ListEvents)
			events.POST("", eventController.CreateEvent)
			events.PUT("/:id", eventController.UpdateEvent)
			events.DELETE("/:id", eventController.DeleteEvent)
			events.POST("/:id/dispatch", eventController.DispatchEvent)
		}

		dashboard := authenticated.Group("/dashboard")
		{
			dashboard.GET("/summary", dashboardController.Summary)
			dashboard.GET("/expenses", dashboardController.Expenses)
			dashboard.GET("/calendar", dashboardController.Calendar)
			dashboard.GET("/meals", dashboardController.Meals)
		}

		devices := authenticated.Group("/devices")
		{
			devices.POST("", deviceController.RegisterDevice)
		}
	}
}
