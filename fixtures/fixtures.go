package fixtures

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	authModels "auth/models"
	authUtils "auth/utils"
	"core/models"
	coreUtils "core/utils"

	"gorm.io/gorm"
)

type Fixtures struct {
	db *gorm.DB
}

func NewFixtures(db *gorm.DB) *Fixtures {
	return &Fixtures{db: db}
}

// GenerateTestData creates users, pools with matches, bets and polls,
// then scores the finished matches so rankings have real data.
func (f *Fixtures) GenerateTestData() error {
	log.Println("Starting fixtures generation...")

	users, err := f.generateUsers()
	if err != nil {
		return fmt.Errorf("failed to generate users: %w", err)
	}

	pools, err := f.generatePools(users)
	if err != nil {
		return fmt.Errorf("failed to generate pools: %w", err)
	}

	matches, err := f.generateMatches(pools)
	if err != nil {
		return fmt.Errorf("failed to generate matches: %w", err)
	}

	bets, err := f.generateBets(users, matches)
	if err != nil {
		return fmt.Errorf("failed to generate bets: %w", err)
	}

	if err := f.scoreFinishedMatches(pools, matches); err != nil {
		return fmt.Errorf("failed to score matches: %w", err)
	}

	polls, err := f.generatePolls(users)
	if err != nil {
		return fmt.Errorf("failed to generate polls: %w", err)
	}

	log.Println("Fixtures generated successfully!")
	log.Printf("Created %d users, %d pools, %d matches, %d bets and %d polls",
		len(users), len(pools), len(matches), len(bets), len(polls))
	return nil
}

func (f *Fixtures) generateUsers() ([]authModels.User, error) {
	usernames := []string{
		"rafael", "juliana", "lucas", "fernanda", "gabriel",
		"beatriz", "matheus", "larissa", "thiago", "camila",
	}

	var users []authModels.User

	for i, username := range usernames {
		hashedPassword, err := authUtils.HashPassword("password123")
		if err != nil {
			return nil, err
		}

		user := authModels.User{
			Email:    fmt.Sprintf("%s@palpita.com.br", username),
			Username: username,
			Slug:     strings.ToLower(username),
			Password: hashedPassword,
			Enabled:  true,
			Roles:    authModels.GetDefaultRoles(),
		}
		// First user doubles as admin
		if i == 0 {
			user.AddRole(authModels.RoleAdmin)
		}

		if err := f.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	log.Printf("Created %d users", len(users))
	return users, nil
}

func (f *Fixtures) generatePools(users []authModels.User) ([]models.Pool, error) {
	names := []string{
		"Brasileirão 2025",
		"Copa do Bairro",
		"Champions entre Amigos",
	}

	codes := []string{"BRAS2025", "COPABAIR", "CHAMPAMI"}

	var pools []models.Pool

	for i, name := range names {
		creator := users[i%len(users)]
		start := time.Now().AddDate(0, 0, -14)
		end := time.Now().AddDate(0, 1, 0)

		pool := models.Pool{
			Name:             name,
			CreatorID:        creator.ID,
			Status:           models.PoolStatusActive,
			InviteCode:       codes[i],
			ScoringRules:     models.DefaultScoringRules(),
			ParticipantCount: 0,
			StartDate:        &start,
			EndDate:          &end,
		}
		if err := f.db.Create(&pool).Error; err != nil {
			return nil, err
		}

		// Creator plus five other members per pool
		members := map[uint]bool{}
		members[creator.ID] = true
		for len(members) < 6 {
			members[users[rand.Intn(len(users))].ID] = true
		}

		for userID := range members {
			participant := models.PoolParticipant{
				PoolID:   pool.ID,
				UserID:   userID,
				JoinedAt: start,
			}
			if err := f.db.Create(&participant).Error; err != nil {
				return nil, err
			}
		}

		if err := f.db.Model(&pool).Update("participant_count", len(members)).Error; err != nil {
			return nil, err
		}

		pools = append(pools, pool)
	}

	log.Printf("Created %d pools", len(pools))
	return pools, nil
}

var teams = []string{
	"Flamengo", "Palmeiras", "Corinthians", "São Paulo",
	"Grêmio", "Internacional", "Fluminense", "Atlético-MG",
	"Cruzeiro", "Botafogo", "Santos", "Bahia",
}

func (f *Fixtures) generateMatches(pools []models.Pool) ([]models.Match, error) {
	var matches []models.Match

	for _, pool := range pools {
		// Half the matches already finished, half upcoming
		for i := 0; i < 8; i++ {
			home := teams[rand.Intn(len(teams))]
			away := teams[rand.Intn(len(teams))]
			for away == home {
				away = teams[rand.Intn(len(teams))]
			}

			match := models.Match{
				PoolID:   pool.ID,
				HomeTeam: home,
				AwayTeam: away,
				Status:   models.MatchStatusScheduled,
			}

			if i < 4 {
				match.MatchDate = time.Now().AddDate(0, 0, -(7 - i))
				match.Status = models.MatchStatusFinished
				homeScore := rand.Intn(4)
				awayScore := rand.Intn(4)
				match.HomeScore = &homeScore
				match.AwayScore = &awayScore
			} else {
				match.MatchDate = time.Now().AddDate(0, 0, i-2)
			}

			if err := f.db.Create(&match).Error; err != nil {
				return nil, err
			}
			matches = append(matches, match)
		}
	}

	log.Printf("Created %d matches", len(matches))
	return matches, nil
}

func (f *Fixtures) generateBets(users []authModels.User, matches []models.Match) ([]models.UserBet, error) {
	var bets []models.UserBet

	for _, match := range matches {
		var participants []models.PoolParticipant
		if err := f.db.Where("pool_id = ?", match.PoolID).Find(&participants).Error; err != nil {
			return nil, err
		}

		for _, participant := range participants {
			// Roughly one participant in four sits a match out
			if rand.Intn(4) == 0 {
				continue
			}

			bet := models.UserBet{
				UserID:              participant.UserID,
				MatchID:             match.ID,
				HomeScorePrediction: rand.Intn(4),
				AwayScorePrediction: rand.Intn(4),
			}
			if err := f.db.Create(&bet).Error; err != nil {
				return nil, err
			}
			bets = append(bets, bet)
		}
	}

	log.Printf("Created %d bets", len(bets))
	return bets, nil
}

// scoreFinishedMatches awards points for every bet on a finished match
// the same way the scoring service does it at runtime.
func (f *Fixtures) scoreFinishedMatches(pools []models.Pool, matches []models.Match) error {
	rulesByPool := map[uint]models.ScoringRules{}
	for _, pool := range pools {
		rulesByPool[pool.ID] = pool.ScoringRules
	}

	scored := 0
	for _, match := range matches {
		if match.Status != models.MatchStatusFinished || match.HomeScore == nil || match.AwayScore == nil {
			continue
		}

		rules := rulesByPool[match.PoolID]

		var bets []models.UserBet
		if err := f.db.Where("match_id = ?", match.ID).Find(&bets).Error; err != nil {
			return err
		}

		for _, bet := range bets {
			points := coreUtils.CalculateBetPoints(rules,
				bet.HomeScorePrediction, bet.AwayScorePrediction,
				*match.HomeScore, *match.AwayScore)
			if err := f.db.Model(&bet).Update("points_earned", points).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		if err := f.db.Model(&models.Match{}).Where("id = ?", match.ID).
			Update("scored_at", &now).Error; err != nil {
			return err
		}
		scored++
	}

	log.Printf("Scored %d finished matches", scored)
	return nil
}

func (f *Fixtures) generatePolls(users []authModels.User) ([]models.Poll, error) {
	admin := users[0]

	definitions := []struct {
		title   string
		options []string
	}{
		{
			title:   "Quem leva o Brasileirão este ano?",
			options: []string{"Flamengo", "Palmeiras", "Botafogo", "Outro"},
		},
		{
			title:   "Melhor horário para os jogos do bolão?",
			options: []string{"Sábado à tarde", "Domingo à tarde", "Quarta à noite"},
		},
	}

	var polls []models.Poll

	for _, def := range definitions {
		poll := models.Poll{
			Title:     def.title,
			CreatorID: admin.ID,
			Status:    models.PollStatusOpen,
		}
		if err := f.db.Create(&poll).Error; err != nil {
			return nil, err
		}

		var options []models.PollOption
		for _, text := range def.options {
			option := models.PollOption{
				PollID: poll.ID,
				Text:   text,
			}
			if err := f.db.Create(&option).Error; err != nil {
				return nil, err
			}
			options = append(options, option)
		}

		// Most users vote
		for _, user := range users {
			if rand.Intn(5) == 0 {
				continue
			}
			option := options[rand.Intn(len(options))]
			vote := models.UserPollVote{
				UserID:   user.ID,
				PollID:   poll.ID,
				OptionID: option.ID,
			}
			if err := f.db.Create(&vote).Error; err != nil {
				return nil, err
			}
			if err := f.db.Model(&models.PollOption{}).Where("id = ?", option.ID).
				Update("votes_count", gorm.Expr("votes_count + 1")).Error; err != nil {
				return nil, err
			}
		}

		polls = append(polls, poll)
	}

	log.Printf("Created %d polls", len(polls))
	return polls, nil
}

// ClearAllData removes every fixture generated table content. Order
// matters because of the foreign keys.
func (f *Fixtures) ClearAllData() error {
	tables := []string{
		"user_poll_votes",
		"poll_options",
		"polls",
		"notifications",
		"activities",
		"ranking_snapshots",
		"user_bets",
		"matches",
		"pool_participants",
		"pools",
		"refresh_tokens",
		"users",
	}

	for _, table := range tables {
		if err := f.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	return nil
}
