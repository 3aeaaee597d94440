package service

import (
	"context"
	"encoding/json"
	"time"

	"icsq_backend/internal/config"
	"icsq_backend/internal/model"
	"icsq_backend/internal/repository"
	"icsq_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const scoreCacheKey = "icsq:scores:departments"

type ScoreService struct {
	SurveyRepo     *repository.SurveyRepository
	DepartmentRepo *repository.DepartmentRepository
	Redis          *redis.Client
	CacheTTL       time.Duration
}

func NewScoreService(surveyRepo *repository.SurveyRepository, departmentRepo *repository.DepartmentRepository, rdb *redis.Client, cfg *config.Config) *ScoreService {
	return &ScoreService{
		SurveyRepo:     surveyRepo,
		DepartmentRepo: departmentRepo,
		Redis:          rdb,
		CacheTTL:       time.Duration(cfg.Cache.ScoreTTLMinutes) * time.Minute,
	}
}

// surveyAccumulator 单份问卷内各类别评分的累计。
type surveyAccumulator struct {
	toDept   uint
	fromDept uint
	sum      int
	count    int
	byCat    map[string][2]int // category -> {sum, count}
	order    int
}

// surveyScore 问卷平均分。全部评分无效时 ok 为 false，不参与任何均值。
func (a *surveyAccumulator) score() (float64, bool) {
	if a.count == 0 {
		return 0, false
	}
	return float64(a.sum) / float64(a.count), true
}

// accumulate 把评分行按问卷归组。非法评分直接跳过，不报错。
func accumulate(rows []model.ScoreRow) ([]*surveyAccumulator, map[string]*surveyAccumulator) {
	byID := make(map[string]*surveyAccumulator)
	var ordered []*surveyAccumulator
	for _, row := range rows {
		acc, ok := byID[row.SurveyID]
		if !ok {
			acc = &surveyAccumulator{
				toDept:   row.ToDepartmentID,
				fromDept: row.FromDepartmentID,
				byCat:    make(map[string][2]int),
				order:    len(ordered),
			}
			byID[row.SurveyID] = acc
			ordered = append(ordered, acc)
		}
		if !model.IsValidRating(row.Rating) {
			continue
		}
		acc.sum += row.Rating
		acc.count++
		pair := acc.byCat[row.Category]
		acc.byCat[row.Category] = [2]int{pair[0] + row.Rating, pair[1] + 1}
	}
	return ordered, byID
}

// BuildDepartmentScores 先对每份问卷求类别均分，再对目标部门求问卷均分。
// 两段取平均的顺序是对外口径的一部分：一份两类别 {100,0} 的问卷和一份
// 单类别 {100} 的问卷得到 (50+100)/2=75，而不是扁平均值 66.7。
func BuildDepartmentScores(departments []model.Department, rows []model.ScoreRow) []model.DepartmentScore {
	surveys, _ := accumulate(rows)

	type deptAgg struct {
		sum   float64
		count int
		byCat map[string][2]float64 // category -> {sum of per-survey cat averages, count}
	}
	agg := make(map[uint]*deptAgg)
	for _, s := range surveys {
		score, ok := s.score()
		if !ok {
			continue
		}
		d := agg[s.toDept]
		if d == nil {
			d = &deptAgg{byCat: make(map[string][2]float64)}
			agg[s.toDept] = d
		}
		d.sum += score
		d.count++
		for cat, pair := range s.byCat {
			if pair[1] == 0 {
				continue
			}
			catAvg := float64(pair[0]) / float64(pair[1])
			p := d.byCat[cat]
			d.byCat[cat] = [2]float64{p[0] + catAvg, p[1] + 1}
		}
	}

	result := make([]model.DepartmentScore, 0, len(departments))
	for _, dept := range departments {
		entry := model.DepartmentScore{
			DepartmentID:   dept.ID,
			Department:     dept.Name,
			DetailedScores: map[string]float64{},
		}
		if d, ok := agg[dept.ID]; ok && d.count > 0 {
			entry.Score = model.NewScore(d.sum / float64(d.count))
			entry.SurveyCount = d.count
			for cat, pair := range d.byCat {
				entry.DetailedScores[cat] = roundScore(pair[0] / pair[1])
			}
		}
		result = append(result, entry)
	}
	return result
}

// BuildSourceScores 单个目标部门按来源部门拆分的同一套汇总。
func BuildSourceScores(toDepartmentID uint, departments []model.Department, rows []model.ScoreRow) []model.SourceDepartmentScore {
	deptNames := make(map[uint]string, len(departments))
	for _, d := range departments {
		deptNames[d.ID] = d.Name
	}

	surveys, _ := accumulate(rows)

	type srcAgg struct {
		sum   float64
		count int
		byCat map[string][2]float64
		order int
	}
	agg := make(map[uint]*srcAgg)
	var sources []uint
	for _, s := range surveys {
		if s.toDept != toDepartmentID {
			continue
		}
		score, ok := s.score()
		if !ok {
			continue
		}
		a := agg[s.fromDept]
		if a == nil {
			a = &srcAgg{byCat: make(map[string][2]float64), order: len(sources)}
			agg[s.fromDept] = a
			sources = append(sources, s.fromDept)
		}
		a.sum += score
		a.count++
		for cat, pair := range s.byCat {
			if pair[1] == 0 {
				continue
			}
			catAvg := float64(pair[0]) / float64(pair[1])
			p := a.byCat[cat]
			a.byCat[cat] = [2]float64{p[0] + catAvg, p[1] + 1}
		}
	}

	result := make([]model.SourceDepartmentScore, 0, len(sources))
	for _, src := range sources {
		a := agg[src]
		entry := model.SourceDepartmentScore{
			FromDepartmentID: src,
			FromDepartment:   deptNames[src],
			Score:            model.NewScore(a.sum / float64(a.count)),
			SurveyCount:      a.count,
			DetailedScores:   map[string]float64{},
		}
		for cat, pair := range a.byCat {
			entry.DetailedScores[cat] = roundScore(pair[0] / pair[1])
		}
		result = append(result, entry)
	}
	return result
}

// BuildOverview 全平台概览。没有任何问卷时平均分是 "N/A"，不是 0。
func BuildOverview(departments []model.Department, rows []model.ScoreRow) model.PlatformOverview {
	scores := BuildDepartmentScores(departments, rows)

	sum := 0.0
	count := 0
	surveyed := make(map[string]bool)
	for _, row := range rows {
		surveyed[row.SurveyID] = true
	}
	for _, s := range scores {
		if s.Score.Valid {
			sum += s.Score.Value * float64(s.SurveyCount)
			count += s.SurveyCount
		}
	}

	overview := model.PlatformOverview{
		SurveyCount:      len(surveyed),
		DepartmentCount:  len(departments),
		DepartmentScores: scores,
	}
	if count > 0 {
		overview.AverageScore = model.NewScore(sum / float64(count))
	}
	return overview
}

func roundScore(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

// GetDepartmentScores 全部门得分报表，经 Redis 短 TTL 缓存。
func (s *ScoreService) GetDepartmentScores(ctx context.Context) ([]model.DepartmentScore, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, scoreCacheKey).Result(); err == nil {
			var scores []model.DepartmentScore
			if err := json.Unmarshal([]byte(cached), &scores); err == nil {
				return scores, nil
			}
		}
	}

	departments, err := s.DepartmentRepo.FindAll()
	if err != nil {
		return nil, err
	}
	rows, err := s.SurveyRepo.ScoreRows()
	if err != nil {
		return nil, err
	}

	scores := BuildDepartmentScores(departments, rows)

	if s.Redis != nil {
		if payload, err := json.Marshal(scores); err == nil {
			if err := s.Redis.Set(ctx, scoreCacheKey, payload, s.CacheTTL).Err(); err != nil {
				logger.Log.Warn("score cache write failed", zap.Error(err))
			}
		}
	}
	return scores, nil
}

// GetSourceScores 单个目标部门按来源部门拆分。
func (s *ScoreService) GetSourceScores(toDepartmentID uint) ([]model.SourceDepartmentScore, error) {
	if _, err := s.DepartmentRepo.FindByID(toDepartmentID); err != nil {
		return nil, err
	}
	departments, err := s.DepartmentRepo.FindAll()
	if err != nil {
		return nil, err
	}
	rows, err := s.SurveyRepo.ScoreRows()
	if err != nil {
		return nil, err
	}
	return BuildSourceScores(toDepartmentID, departments, rows), nil
}

func (s *ScoreService) GetOverview(ctx context.Context) (*model.PlatformOverview, error) {
	departments, err := s.DepartmentRepo.FindAll()
	if err != nil {
		return nil, err
	}
	rows, err := s.SurveyRepo.ScoreRows()
	if err != nil {
		return nil, err
	}
	overview := BuildOverview(departments, rows)
	return &overview, nil
}

// InvalidateCache 问卷有写入时调用。
func (s *ScoreService) InvalidateCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, scoreCacheKey).Err(); err != nil {
		logger.Log.Warn("score cache invalidation failed", zap.Error(err))
	}
}
