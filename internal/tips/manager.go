package tips

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
)

var ErrNoTips = errors.New("no tips")

// Manager holds the health tips shown in the carousel. The list is
// read-mostly, an admin triggered reload can swap it at runtime.
type Manager struct {
	mu   sync.RWMutex
	tips []string
}

// DefaultTips is the built-in list, used when no tips file is configured.
func DefaultTips() []string {
	return []string{
		"Drink 8 glasses of water daily 💧",
		"Get at least 7 hours of sleep 🛌",
		"Stretch for 5 minutes every hour 🧘",
		"Aim for 150 minutes of moderate exercise per week 🏃",
		"Include vegetables and protein with every meal 🥗",
		"Walk for 30 minutes after lunch if possible 🚶",
	}
}

func NewManager(tips []string) (*Manager, error) {
	if len(tips) == 0 {
		return nil, ErrNoTips
	}
	return &Manager{tips: tips}, nil
}

func NewManagerFromCSV(tipsCsvReader *csv.Reader) (*Manager, error) {
	tips, err := readTips(tipsCsvReader)
	if err != nil {
		return nil, err
	}
	return NewManager(tips)
}

// NewManagerFromFile creates a Manager from the CSV file at tipsCsvPath,
// falling back to the built-in tips when the path is empty.
func NewManagerFromFile(tipsCsvPath string) (*Manager, error) {
	if tipsCsvPath == "" {
		return NewManager(DefaultTips())
	}

	tipsCsvFile, err := os.Open(tipsCsvPath)
	if err != nil {
		return nil, fmt.Errorf("open tips file: %w", err)
	}
	defer func() {
		if err := tipsCsvFile.Close(); err != nil {
			log.Warnf("close tips csv file: %s", err)
		}
	}()

	return NewManagerFromCSV(csv.NewReader(tipsCsvFile))
}

// Reload swaps the tip list with the one read from the given reader.
// The current list is kept on any read error.
func (m *Manager) Reload(tipsCsvReader *csv.Reader) error {
	tips, err := readTips(tipsCsvReader)
	if err != nil {
		return err
	}
	if len(tips) == 0 {
		return ErrNoTips
	}

	m.mu.Lock()
	m.tips = tips
	m.mu.Unlock()

	return nil
}

func readTips(tipsCsvReader *csv.Reader) ([]string, error) {
	log.Println("reading tips CSV ...")

	tipsCsvReader.Comma = ';'
	var tips []string
	for {
		record, err := tipsCsvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(record) != 1 {
			return nil, fmt.Errorf("record [%s] does not have 1 element", record)
		}

		tips = append(tips, record[0])
	}

	log.Printf("tips CSV read %d tips", len(tips))

	return tips, nil
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tips)
}

// TipAt returns the tip the given cursor points at, the cursor
// wraps around the list length.
func (m *Manager) TipAt(index int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if index < 0 {
		index = 0
	}
	return m.tips[index%len(m.tips)]
}

func (m *Manager) RandomTip() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	index := rand.Float64() * float64(len(m.tips))
	return m.tips[int(index)]
}
