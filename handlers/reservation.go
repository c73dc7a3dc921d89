package handlers

import (
	"net/http"
	"time"

	"dinedash-api/config"
	"dinedash-api/middleware"
	"dinedash-api/models"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"
)

type CreateReservationRequest struct {
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	Minutes        int    `json:"minutes" binding:"required"`
	NumberOfGuests int    `json:"number_of_guests" binding:"required"`
}

// validateReservationSpan checks every rule and reports all failures
// together rather than stopping at the first.
func validateReservationSpan(restaurant *models.Restaurant, start, end time.Time, minutes, guests int) error {
	var result *multierror.Error

	if guests < 1 {
		result = multierror.Append(result, &reservationRuleError{"Number of guests must be at least 1."})
	}
	if minutes < 1 {
		result = multierror.Append(result, &reservationRuleError{"Duration must be at least 1 minute."})
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if start.Before(today) {
		result = multierror.Append(result, &reservationRuleError{"Date must be today or in the future."})
	}

	weekday := start.Weekday()
	dayName := weekdayNames[weekday]
	hours := restaurant.HoursFor(weekday)
	sameDay := start.Year() == end.Year() && start.YearDay() == end.YearDay()
	switch {
	case hours == nil:
		result = multierror.Append(result, &reservationRuleError{"Restaurant is closed on " + dayName + "s."})
	case !restaurant.FitsHours(weekday, models.MinutesOfDay(start), models.MinutesOfDay(end), sameDay):
		if models.MinutesOfDay(start) < hours.OpenMinutes {
			result = multierror.Append(result, &reservationRuleError{
				"Reservation should not start before the opening hour on " + dayName + "."})
		}
		if models.MinutesOfDay(end) > hours.CloseMinutes || !sameDay {
			result = multierror.Append(result, &reservationRuleError{
				"Reservation should not extend past the closing hour on " + dayName + "."})
		}
	}

	return result.ErrorOrNil()
}

type reservationRuleError struct{ msg string }

func (e *reservationRuleError) Error() string { return e.msg }

func ruleMessages(err error) []string {
	var msgs []string
	if merr, ok := err.(*multierror.Error); ok {
		for _, e := range merr.Errors {
			msgs = append(msgs, e.Error())
		}
		return msgs
	}
	return []string{err.Error()}
}

// CreateReservation books a time span at a restaurant. The span is computed
// from date, time and duration; all rule violations come back in one
// response and nothing is persisted unless every rule passes.
func CreateReservation(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Preload("Hours").First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Time, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date or time, expected YYYY-MM-DD and HH:MM"})
		return
	}
	end := start.Add(time.Duration(req.Minutes) * time.Minute)

	if err := validateReservationSpan(&restaurant, start, end, req.Minutes, req.NumberOfGuests); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": ruleMessages(err)})
		return
	}

	reservation := models.Reservation{
		RestaurantID:   restaurant.ID,
		UserID:         userID,
		NumberOfGuests: req.NumberOfGuests,
		StartDate:      start,
		EndDate:        end,
		Status:         models.ReservationPending,
	}
	if err := config.DB.Create(&reservation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Reservation created", "reservation": reservation})
}

// ListReservations shows the owner's reservations, optionally filtered by
// status and calendar date.
func ListReservations(c *gin.Context) {
	restaurant, ok := ownedRestaurant(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Table").Where("restaurant_id = ?", restaurant.ID)
	if status := c.Query("status"); status != "" {
		if !models.ReservationStatus(status).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date filter, expected YYYY-MM-DD"})
			return
		}
		query = query.Where("start_date >= ? AND start_date < ?", day, day.AddDate(0, 0, 1))
	}

	var reservations []models.Reservation
	query.Order("start_date asc").Find(&reservations)
	c.JSON(http.StatusOK, gin.H{"count": len(reservations), "reservations": reservations})
}

// candidateTables returns the restaurant's tables that could seat the
// reservation: enough capacity and no other reservation whose interval
// touches this one, boundaries included. The reservation's own row never
// disqualifies the table it already holds.
func candidateTables(reservation *models.Reservation) ([]models.Table, error) {
	var tables []models.Table
	err := config.DB.
		Where("restaurant_id = ? AND capacity >= ?", reservation.RestaurantID, reservation.NumberOfGuests).
		Where(`id NOT IN (
			SELECT table_id FROM reservations
			WHERE table_id IS NOT NULL AND id <> ?
				AND start_date <= ? AND end_date >= ?)`,
			reservation.ID, reservation.EndDate, reservation.StartDate).
		Order("local_id asc").
		Find(&tables).Error
	return tables, err
}

// GetCandidateTables exposes the table-availability query for a reservation.
func GetCandidateTables(c *gin.Context) {
	restaurant, ok := ownedRestaurant(c)
	if !ok {
		return
	}

	var reservation models.Reservation
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurant.ID).
		First(&reservation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}

	tables, err := candidateTables(&reservation)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query tables"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(tables), "tables": tables})
}

type ModifyReservationRequest struct {
	Status  *models.ReservationStatus `json:"status"`
	TableID *uint                     `json:"table_id"`
}

// ModifyReservation lets the owner set the status and assign or reassign the
// table. The chosen table must come out of the candidate query.
func ModifyReservation(c *gin.Context) {
	restaurant, ok := ownedRestaurant(c)
	if !ok {
		return
	}

	var reservation models.Reservation
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("id"), restaurant.ID).
		First(&reservation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}

	var req ModifyReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation status"})
			return
		}
		reservation.Status = *req.Status
	}

	if req.TableID != nil {
		tables, err := candidateTables(&reservation)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query tables"})
			return
		}
		eligible := false
		for _, t := range tables {
			if t.ID == *req.TableID {
				eligible = true
				break
			}
		}
		if !eligible {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Table is not available for this reservation"})
			return
		}
		reservation.TableID = req.TableID
	}

	if err := config.DB.Save(&reservation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reservation"})
		return
	}

	config.DB.Preload("Table").First(&reservation, reservation.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Reservation updated", "reservation": reservation})
}

// GetMyReservations lists the signed-in customer's bookings.
func GetMyReservations(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var reservations []models.Reservation
	config.DB.Preload("Table").
		Where("user_id = ?", userID).
		Order("start_date asc").
		Find(&reservations)
	c.JSON(http.StatusOK, gin.H{"count": len(reservations), "reservations": reservations})
}

// ── Tables ──────────────────────────────────────────────────────────────────

type TableRequest struct {
	LocalID  int `json:"local_id" binding:"required"`
	Capacity int `json:"capacity" binding:"required,min=1"`
}

// AddTable registers a table. The table number is unique per restaurant.
func AddTable(c *gin.Context) {
	restaurant, ok := ownedRestaurant(c)
	if !ok {
		return
	}

	var req TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	table := models.Table{
		RestaurantID: restaurant.ID,
		LocalID:      req.LocalID,
		Capacity:     req.Capacity,
	}
	if err := config.DB.Create(&table).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A table with this number already exists"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Table added", "table": table})
}

// ListTables returns the owner's tables.
func ListTables(c *gin.Context) {
	restaurant, ok := ownedRestaurant(c)
	if !ok {
		return
	}

	var tables []models.Table
	config.DB.Where("restaurant_id = ?", restaurant.ID).Order("local_id asc").Find(&tables)
	c.JSON(http.StatusOK, gin.H{"count": len(tables), "tables": tables})
}

// DeleteTable removes a table that has no reservations assigned.
func DeleteTable(c *gin.Context) {
	restaurant, ok := ownedRestaurant(c)
	if !ok {
		return
	}

	var table models.Table
	if err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("tableId"), restaurant.ID).
		First(&table).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}

	var assigned int64
	config.DB.Model(&models.Reservation{}).Where("table_id = ?", table.ID).Count(&assigned)
	if assigned > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Table still has reservations assigned"})
		return
	}

	if err := config.DB.Delete(&table).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete table"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Table deleted"})
}
