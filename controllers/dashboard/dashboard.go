package dashboard

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"cobbler-shop/logger"
	deliveryModel "cobbler-shop/models/delivery"
	enquiryModel "cobbler-shop/models/enquiry"
	inventoryModel "cobbler-shop/models/inventory"
	pickupModel "cobbler-shop/models/pickup"
	serviceModel "cobbler-shop/models/service"
	"cobbler-shop/types"
	"cobbler-shop/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DashboardController serves the read-side aggregation for the home screen
type DashboardController struct {
	DB *gorm.DB
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

type counts struct {
	TotalEnquiries int64 `json:"totalEnquiries"`
	TotalDelivered int64 `json:"totalDelivered"`
	PendingPickups int64 `json:"pendingPickups"`
	InService      int64 `json:"inService"`
	CompletedToday int64 `json:"completedToday"`
	DeliveredToday int64 `json:"deliveredToday"`
}

// collectCounts runs the independent count queries concurrently; the
// first error wins.
func (dc *DashboardController) collectCounts() (*counts, error) {
	var (
		result counts
		wg     sync.WaitGroup
		mu     sync.Mutex
		first  error
	)

	dayStart, dayEnd := utils.DayBounds(time.Now())

	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				if first == nil {
					first = err
				}
				mu.Unlock()
			}
		}()
	}

	run(func() error {
		return dc.DB.Model(&enquiryModel.Enquiry{}).Count(&result.TotalEnquiries).Error
	})
	run(func() error {
		return dc.DB.Model(&deliveryModel.DeliveryDetail{}).
			Where("status = ?", deliveryModel.StatusDelivered).
			Count(&result.TotalDelivered).Error
	})
	run(func() error {
		return dc.DB.Model(&pickupModel.PickupDetail{}).
			Where("status IN ?", []pickupModel.PickupStatus{pickupModel.StatusScheduled, pickupModel.StatusAssigned}).
			Count(&result.PendingPickups).Error
	})
	run(func() error {
		return dc.DB.Model(&serviceModel.ServiceType{}).
			Where("status IN ?", []serviceModel.TaskStatus{serviceModel.TaskPending, serviceModel.TaskInProgress}).
			Distinct("enquiry_id").
			Count(&result.InService).Error
	})
	run(func() error {
		return dc.DB.Model(&serviceModel.ServiceDetail{}).
			Where("completed_at >= ? AND completed_at < ?", dayStart, dayEnd).
			Count(&result.CompletedToday).Error
	})
	run(func() error {
		return dc.DB.Model(&deliveryModel.DeliveryDetail{}).
			Where("delivered_at >= ? AND delivered_at < ?", dayStart, dayEnd).
			Count(&result.DeliveredToday).Error
	})

	wg.Wait()
	if first != nil {
		return nil, first
	}
	return &result, nil
}

// Counts returns only the headline numbers
func (dc *DashboardController) Counts(c *fiber.Ctx) error {
	result, err := dc.collectCounts()
	if err != nil {
		logger.Error("Failed to collect dashboard counts", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}
	return c.JSON(types.Ok(result))
}

type activity struct {
	Text string    `json:"text"`
	Time time.Time `json:"time"`
}

// recentActivity stitches the three most recent events per category
// into one feed. Text is assembled in Go to stay portable between
// MySQL and the sqlite test databases.
func (dc *DashboardController) recentActivity() ([]activity, error) {
	var feed []activity

	var enquiries []enquiryModel.Enquiry
	if err := dc.DB.Order("created_at DESC").Limit(3).Find(&enquiries).Error; err != nil {
		return nil, err
	}
	for _, e := range enquiries {
		// Truncate on a rune boundary so multi-byte text stays valid UTF-8.
		msg := e.Message
		if runes := []rune(msg); len(runes) > 35 {
			msg = string(runes[:35])
		}
		feed = append(feed, activity{
			Text: fmt.Sprintf("New enquiry from %s - %s", e.InquiryType, msg),
			Time: e.CreatedAt,
		})
	}

	type pickupRow struct {
		CustomerName string
		Quantity     int
		CreatedAt    time.Time
	}
	var pickups []pickupRow
	if err := dc.DB.Model(&pickupModel.PickupDetail{}).
		Select("enquiries.customer_name, enquiries.quantity, pickup_details.created_at").
		Joins("JOIN enquiries ON enquiries.id = pickup_details.enquiry_id").
		Order("pickup_details.created_at DESC").Limit(3).
		Scan(&pickups).Error; err != nil {
		return nil, err
	}
	for _, p := range pickups {
		feed = append(feed, activity{
			Text: fmt.Sprintf("Pickup scheduled for %s - %d items", p.CustomerName, p.Quantity),
			Time: p.CreatedAt,
		})
	}

	var services []serviceModel.ServiceDetail
	if err := dc.DB.Where("completed_at IS NOT NULL").
		Order("completed_at DESC").Limit(3).Find(&services).Error; err != nil {
		return nil, err
	}
	for _, s := range services {
		feed = append(feed, activity{
			Text: fmt.Sprintf("Service completed for Order #%d", s.EnquiryID),
			Time: *s.CompletedAt,
		})
	}

	sort.Slice(feed, func(i, j int) bool { return feed[i].Time.After(feed[j].Time) })
	if len(feed) > 5 {
		feed = feed[:5]
	}
	return feed, nil
}

type stockAlert struct {
	Item  string `json:"item"`
	Stock int    `json:"stock"`
}

// lowStockAlerts lists the three items closest to running out, with a
// demo fallback when the inventory is empty.
func (dc *DashboardController) lowStockAlerts() ([]stockAlert, error) {
	type alertRow struct {
		Name     string
		Quantity int
	}
	var rows []alertRow
	if err := dc.DB.Model(&inventoryModel.InventoryItem{}).
		Select("name, quantity").
		Where("quantity <= min_stock").
		Order("quantity ASC").Limit(3).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return []stockAlert{
			{Item: "Leather polish", Stock: 2},
			{Item: "Sole adhesive", Stock: 1},
		}, nil
	}

	alerts := make([]stockAlert, 0, len(rows))
	for _, r := range rows {
		alerts = append(alerts, stockAlert{Item: r.Name, Stock: r.Quantity})
	}
	return alerts, nil
}

// Overview returns counts, the recent-activity feed and low-stock alerts
func (dc *DashboardController) Overview(c *fiber.Ctx) error {
	countsResult, err := dc.collectCounts()
	if err != nil {
		logger.Error("Failed to collect dashboard counts", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	feed, err := dc.recentActivity()
	if err != nil {
		logger.Error("Failed to build activity feed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	alerts, err := dc.lowStockAlerts()
	if err != nil {
		logger.Error("Failed to load low stock alerts", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail(err.Error()))
	}

	return c.JSON(types.Ok(fiber.Map{
		"counts":         countsResult,
		"recentActivity": feed,
		"lowStockAlerts": alerts,
	}))
}
