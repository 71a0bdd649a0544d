// Package seeders fills an empty database with a working catalogue: an
// admin account, the seven component categories and three components per
// category. Run is idempotent for the admin user and skips seeding when
// categories already exist.
package seeders

import (
	"errors"
	"fmt"

	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/pkg/auth"
	"github.com/buildmaster/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run executes all seeders.
func Run(db *gorm.DB) error {
	if err := seedAdmin(db); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("seed: catalogue already present, skipping")
		return nil
	}

	categories, err := seedCategories(db)
	if err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if err := seedComponents(db, categories); err != nil {
		return fmt.Errorf("seed components: %w", err)
	}

	logger.Info("seed: done")
	return nil
}

func seedAdmin(db *gorm.DB) error {
	var existing models.User
	err := db.Where("email = ?", "admin@buildmaster.com").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		FirstName: "Zakaria",
		LastName:  "Admin",
		Email:     "admin@buildmaster.com",
		Password:  hash,
		Role:      models.RoleAdmin,
	}).Error
}

func seedCategories(db *gorm.DB) (map[string]uint, error) {
	data := []models.Category{
		{Name: "Processeurs", Description: "Central Processing Units"},
		{Name: "Cartes Mères", Description: "Motherboards"},
		{Name: "Mémoire RAM", Description: "Random Access Memory"},
		{Name: "Cartes Graphiques", Description: "Graphics Cards / GPUs"},
		{Name: "Stockage", Description: "SSDs and HDDs"},
		{Name: "Alimentation", Description: "Power Supply Units"},
		{Name: "Boîtiers", Description: "Computer Cases"},
	}

	ids := make(map[string]uint, len(data))
	for i := range data {
		if err := db.Create(&data[i]).Error; err != nil {
			return nil, err
		}
		ids[data[i].Name] = data[i].ID
	}
	return ids, nil
}

type seedComponent struct {
	name     string
	brand    string
	price    string
	stock    int
	category string
	specs    map[string]interface{}
}

func seedComponents(db *gorm.DB, categories map[string]uint) error {
	for _, sc := range catalogue() {
		price, err := decimal.NewFromString(sc.price)
		if err != nil {
			return fmt.Errorf("component %s: %w", sc.name, err)
		}

		component := models.Component{
			Name:           sc.name,
			Brand:          sc.brand,
			Price:          price,
			Stock:          sc.stock,
			IsActive:       true,
			CategoryID:     categories[sc.category],
			Specifications: sc.specs,
		}
		if err := db.Create(&component).Error; err != nil {
			return err
		}
	}
	return nil
}

func catalogue() []seedComponent {
	return []seedComponent{
		// CPUs
		{"Intel Core i9-14900K", "Intel", "589.99", 10, "Processeurs", map[string]interface{}{
			"socket": "LGA1700", "cores": 24, "threads": 32, "baseClock": "3.2 GHz",
			"boostClock": "6.0 GHz", "tdp": 125, "cache": "36MB", "integratedGraphics": "UHD 770",
		}},
		{"AMD Ryzen 7 7800X3D", "AMD", "449.00", 15, "Processeurs", map[string]interface{}{
			"socket": "AM5", "cores": 8, "threads": 16, "baseClock": "4.2 GHz",
			"boostClock": "5.0 GHz", "tdp": 120, "cache": "96MB", "integratedGraphics": "Radeon Graphics",
		}},
		{"Intel Core i5-13600K", "Intel", "319.99", 25, "Processeurs", map[string]interface{}{
			"socket": "LGA1700", "cores": 14, "threads": 20, "baseClock": "3.5 GHz",
			"boostClock": "5.1 GHz", "tdp": 125, "cache": "24MB", "integratedGraphics": "UHD 770",
		}},

		// Motherboards
		{"ASUS ROG STRIX Z790-E", "ASUS", "499.99", 8, "Cartes Mères", map[string]interface{}{
			"socket": "LGA1700", "chipset": "Z790", "formFactor": "ATX", "memoryType": "DDR5",
			"memorySlots": 4, "maxMemory": "192GB", "m2Slots": 5, "wifi": "WiFi 6E + BT 5.3",
		}},
		{"MSI MAG B650 TOMAHAWK", "MSI", "219.00", 12, "Cartes Mères", map[string]interface{}{
			"socket": "AM5", "chipset": "B650", "formFactor": "ATX", "memoryType": "DDR5",
			"memorySlots": 4, "maxMemory": "128GB", "m2Slots": 2, "wifi": "WiFi 6 + BT 5.2",
		}},
		{"Gigabyte Z690 AORUS ELITE", "Gigabyte", "239.99", 5, "Cartes Mères", map[string]interface{}{
			"socket": "LGA1700", "chipset": "Z690", "formFactor": "ATX", "memoryType": "DDR4",
			"memorySlots": 4, "maxMemory": "128GB", "m2Slots": 3, "connectivity": "None",
		}},

		// RAM
		{"Corsair Vengeance 32GB DDR5", "Corsair", "124.99", 30, "Mémoire RAM", map[string]interface{}{
			"capacity": "32GB", "type": "DDR5", "speed": "6000MHz", "casLatency": "CL30",
			"voltage": "1.35V", "rgb": true,
		}},
		{"G.Skill Trident Z5 32GB DDR5", "G.Skill", "139.99", 20, "Mémoire RAM", map[string]interface{}{
			"capacity": "32GB", "type": "DDR5", "speed": "6400MHz", "casLatency": "CL32",
			"voltage": "1.4V", "rgb": true,
		}},
		{"Corsair Vengeance LPX 16GB DDR4", "Corsair", "45.99", 50, "Mémoire RAM", map[string]interface{}{
			"capacity": "16GB", "type": "DDR4", "speed": "3200MHz", "casLatency": "CL16",
			"voltage": "1.35V", "rgb": false,
		}},

		// GPUs
		{"NVIDIA RTX 4090 FE", "NVIDIA", "1599.99", 3, "Cartes Graphiques", map[string]interface{}{
			"vram": "24GB", "vramType": "GDDR6X", "busWidth": "384-bit", "coreClock": "2235MHz",
			"interface": "PCIe 4.0", "length": 336, "tdp": 450, "outputs": "3xDP, 1xHDMI",
		}},
		{"ASUS TUF RTX 4070 Ti", "ASUS", "799.99", 7, "Cartes Graphiques", map[string]interface{}{
			"vram": "12GB", "vramType": "GDDR6X", "busWidth": "192-bit", "coreClock": "2310MHz",
			"interface": "PCIe 4.0", "length": 305, "tdp": 285, "outputs": "3xDP, 1xHDMI",
		}},
		{"AMD Radeon RX 7900 XTX", "AMD", "949.00", 10, "Cartes Graphiques", map[string]interface{}{
			"vram": "24GB", "vramType": "GDDR6", "busWidth": "384-bit", "coreClock": "2300MHz",
			"interface": "PCIe 4.0", "length": 287, "tdp": 355, "outputs": "2xDP, 1xHDMI, 1xUSB-C",
		}},

		// Storage
		{"Samsung 990 Pro 2TB", "Samsung", "169.99", 40, "Stockage", map[string]interface{}{
			"capacity": "2TB", "type": "NVMe SSD", "interface": "PCIe 4.0 x4",
			"readSpeed": "7450 MB/s", "writeSpeed": "6900 MB/s", "formFactor": "M.2 2280",
		}},
		{"Crucial P3 1TB", "Crucial", "69.99", 60, "Stockage", map[string]interface{}{
			"capacity": "1TB", "type": "NVMe SSD", "interface": "PCIe 3.0 x4",
			"readSpeed": "3500 MB/s", "writeSpeed": "3000 MB/s", "formFactor": "M.2 2280",
		}},
		{"Seagate Barracuda 2TB", "Seagate", "54.99", 100, "Stockage", map[string]interface{}{
			"capacity": "2TB", "type": "HDD", "interface": "SATA 6.0 Gb/s",
			"readSpeed": "220 MB/s", "writeSpeed": "220 MB/s", "formFactor": "3.5\"",
		}},

		// PSUs
		{"Corsair RM850x", "Corsair", "129.99", 15, "Alimentation", map[string]interface{}{
			"wattage": 850, "efficiency": "80+ Gold", "modularity": "Fully Modular", "formFactor": "ATX",
		}},
		{"EVGA SuperNOVA 1000 G7", "EVGA", "189.99", 10, "Alimentation", map[string]interface{}{
			"wattage": 1000, "efficiency": "80+ Gold", "modularity": "Fully Modular", "formFactor": "ATX",
		}},
		{"Seasonic Focus GX-750", "Seasonic", "99.99", 20, "Alimentation", map[string]interface{}{
			"wattage": 750, "efficiency": "80+ Gold", "modularity": "Fully Modular", "formFactor": "ATX",
		}},

		// Cases
		{"Lian Li PC-O11 Dynamic", "Lian Li", "149.99", 12, "Boîtiers", map[string]interface{}{
			"type": "Mid-Tower", "motherboardSupport": []string{"ATX", "E-ATX", "Micro-ATX"},
			"maxGPULength": 420, "maxCpuCoolerHeight": "155mm", "includedFans": "None", "radiatorSupport": "360mm",
		}},
		{"NZXT H5 Flow", "NZXT", "94.99", 18, "Boîtiers", map[string]interface{}{
			"type": "Mid-Tower", "motherboardSupport": []string{"ATX", "Micro-ATX", "Mini-ITX"},
			"maxGPULength": 365, "maxCpuCoolerHeight": "165mm", "includedFans": "2x 120mm", "radiatorSupport": "280mm",
		}},
		{"Corsair 4000D Airflow", "Corsair", "104.99", 25, "Boîtiers", map[string]interface{}{
			"type": "Mid-Tower", "motherboardSupport": []string{"ATX", "Micro-ATX", "Mini-ITX"},
			"maxGPULength": 360, "maxCpuCoolerHeight": "170mm", "includedFans": "2x 120mm", "radiatorSupport": "360mm",
		}},
	}
}
