package routes

import (
	"net/http"

	"hawurwanda/admin"
	"hawurwanda/auth"
	"hawurwanda/availability"
	"hawurwanda/bookings"
	"hawurwanda/earnings"
	"hawurwanda/middleware"
	"hawurwanda/models"
	"hawurwanda/notifications"
	"hawurwanda/ratelim"
	"hawurwanda/salons"
	"hawurwanda/transactions"
	"hawurwanda/walkins"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/uploads/profiles/*filepath", http.Dir("uploads/profiles"))
	router.ServeFiles("/uploads/salons/*filepath", http.Dir("uploads/salons"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.GET("/api/auth/session", middleware.Authenticate(auth.SessionActive))
	router.GET("/api/auth/me", middleware.Authenticate(auth.GetMe))
	router.PATCH("/api/auth/me", middleware.Authenticate(auth.UpdateMe))
	router.POST("/api/auth/me/photo", middleware.Authenticate(auth.UploadProfilePhoto))
}

func AddBookingRoutes(router *httprouter.Router) {
	router.POST("/api/bookings", ratelim.RateLimit(middleware.Authenticate(bookings.CreateBooking)))
	router.GET("/api/bookings", middleware.Authenticate(bookings.ListBookings))
	router.GET("/api/booking/:bookingId", middleware.Authenticate(bookings.GetBooking))
	router.PATCH("/api/booking/:bookingId/status", middleware.Authenticate(bookings.UpdateBookingStatus))
	router.POST("/api/booking/:bookingId/cancel", middleware.Authenticate(bookings.CancelBooking))
	router.GET("/api/booking/:bookingId/receipt", middleware.Authenticate(bookings.PrintReceipt))
}

func AddAvailabilityRoutes(router *httprouter.Router) {
	router.GET("/api/availability/:barberId", ratelim.RateLimit(availability.GetAvailability))
	router.GET("/api/availability/:barberId/slots", ratelim.RateLimit(bookings.GetBarberSlots))
	router.PUT("/api/availability/:barberId", middleware.Authenticate(availability.PutAvailability))
	router.POST("/api/availability/:barberId/block", middleware.Authenticate(availability.BlockSlot))
	router.POST("/api/availability/:barberId/unblock", middleware.Authenticate(availability.UnblockSlot))
}

func AddEarningsRoutes(router *httprouter.Router) {
	router.GET("/api/earnings", middleware.Authenticate(earnings.GetMyEarnings))
	router.GET("/api/earnings/salon/all", middleware.Authenticate(earnings.GetSalonEarnings))
	router.GET("/api/earnings/summary/:staffId", middleware.Authenticate(earnings.GetStaffSummary))
	router.POST("/api/earnings/update/:staffId", middleware.Authenticate(earnings.UpdateStaffEarnings))
}

func AddWalkInRoutes(router *httprouter.Router) {
	router.POST("/api/walkins", ratelim.RateLimit(middleware.Authenticate(walkins.CreateWalkIn)))
	router.GET("/api/walkins", middleware.Authenticate(walkins.ListWalkIns))
	router.GET("/api/walkins/salon/all", middleware.Authenticate(walkins.ListSalonWalkIns))
	router.GET("/api/walkin/:walkInId", middleware.Authenticate(walkins.GetWalkIn))
	router.PATCH("/api/walkin/:walkInId", middleware.Authenticate(walkins.UpdateWalkIn))
	router.DELETE("/api/walkin/:walkInId", middleware.Authenticate(walkins.DeleteWalkIn))
}

func AddTransactionRoutes(router *httprouter.Router) {
	router.POST("/api/transactions", ratelim.RateLimit(middleware.Authenticate(transactions.RecordPayment)))
	router.POST("/api/transactions/airtel/confirm", ratelim.RateLimit(transactions.ConfirmAirtel))
	router.GET("/api/transactions", middleware.Authenticate(transactions.ListTransactions))
	router.GET("/api/transactions/booking/:bookingId/summary", middleware.Authenticate(transactions.BookingPaymentSummary))
	router.GET("/api/transaction/:transactionId", middleware.Authenticate(transactions.GetTransaction))
}

func AddNotificationRoutes(router *httprouter.Router) {
	router.GET("/api/notifications", middleware.Authenticate(notifications.GetNotifications))
	router.GET("/api/notifications/unread-count", middleware.Authenticate(notifications.GetUnreadCount))
	router.POST("/api/notifications/read-all", middleware.Authenticate(notifications.MarkAllRead))
	router.PATCH("/api/notification/:notificationId/read", middleware.Authenticate(notifications.MarkRead))
	router.DELETE("/api/notification/:notificationId", middleware.Authenticate(notifications.DeleteNotification))
}

func AddSalonRoutes(router *httprouter.Router) {
	router.GET("/api/salons", ratelim.RateLimit(salons.ListSalons))
	router.POST("/api/salons", ratelim.RateLimit(middleware.Authenticate(salons.CreateSalon)))
	router.GET("/api/salons/:salonId", ratelim.RateLimit(salons.GetSalon))
	router.PATCH("/api/salons/:salonId", middleware.Authenticate(salons.UpdateSalon))
	router.POST("/api/salons/:salonId/gallery", middleware.Authenticate(salons.UploadGalleryImage))

	router.POST("/api/salons/:salonId/services", middleware.Authenticate(salons.CreateService))
	router.PATCH("/api/salons/:salonId/services/:serviceId", middleware.Authenticate(salons.UpdateService))
	router.DELETE("/api/salons/:salonId/services/:serviceId", middleware.Authenticate(salons.DeactivateService))

	router.GET("/api/salons/:salonId/staff", ratelim.RateLimit(salons.ListStaff))
	router.POST("/api/salons/:salonId/staff", middleware.Authenticate(salons.CreateStaff))
	router.POST("/api/salons/:salonId/staff/:staffId/services", middleware.Authenticate(salons.AssignServices))
	router.PATCH("/api/salons/:salonId/staff/:staffId/active", middleware.Authenticate(salons.SetStaffActive))
}

func AddAdminRoutes(router *httprouter.Router) {
	adminOnly := func(h httprouter.Handle) httprouter.Handle {
		return middleware.RequireRoles(h, models.RoleAdmin, models.RoleSuperAdmin)
	}
	superOnly := func(h httprouter.Handle) httprouter.Handle {
		return middleware.RequireRoles(h, models.RoleSuperAdmin)
	}

	router.GET("/api/admin/salons/pending", adminOnly(admin.ListPendingSalons))
	router.POST("/api/admin/salon/:salonId/verify", adminOnly(admin.VerifySalon))
	router.POST("/api/admin/salon/:salonId/reject", adminOnly(admin.RejectSalon))
	router.GET("/api/admin/users", adminOnly(admin.ListUsers))
	router.PATCH("/api/admin/user/:userId/active", adminOnly(admin.SetUserActive))
	router.GET("/api/admin/stats", adminOnly(admin.PlatformStats))
	router.GET("/api/admin/reports/revenue", adminOnly(admin.RevenueReport))

	router.PATCH("/api/superadmin/user/:userId/role", superOnly(admin.SetUserRole))
	router.POST("/api/superadmin/users/bulk-active", superOnly(admin.BulkSetUsersActive))
	router.DELETE("/api/superadmin/user/:userId", superOnly(admin.DeleteUser))
	router.DELETE("/api/superadmin/salon/:salonId", superOnly(admin.DeleteSalon))
}
