package Config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// Settings holds tunables that operators can override through settings.json5.
type Settings struct {
	ListenAddress     string `json:"listen_address"`
	LowStockThreshold int    `json:"low_stock_threshold"`
	MediaDir          string `json:"media_dir"`
}

var Current = Settings{
	ListenAddress:     ":3001",
	LowStockThreshold: 5,
	MediaDir:          "media",
}

// Load reads .env and the optional settings.json5 file. Environment
// variables win over file values.
func Load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file, using environment as-is")
	}

	if f, err := os.Open("settings.json5"); err == nil {
		defer f.Close()
		if err := json5.NewDecoder(f).Decode(&Current); err != nil {
			log.Printf("Error parsing settings.json5: %v", err)
		}
	}

	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		Current.ListenAddress = addr
	}
	if port := os.Getenv("PORT"); port != "" {
		Current.ListenAddress = ":" + port
	}

	if err := os.MkdirAll(Current.MediaDir, 0755); err != nil {
		log.Printf("Error creating media directory: %v", err)
	}
}

// SecretKey returns the JWT signing key.
func SecretKey() []byte {
	if key := os.Getenv("JWT_SECRET"); key != "" {
		return []byte(key)
	}
	return []byte("secret")
}
