package services

import (
	"github.com/famcal/custody-schedule-engine/internal/core/ports/out"
	"github.com/famcal/custody-schedule-engine/internal/core/services/custody_service"
)

type CustodyService = custody_service.CustodyService

func NewCustodyService(
	ruleStore out.RuleStorePort,
	intervalStore out.IntervalStorePort,
	cachePort out.CachePort,
	idGen out.IDGeneratorPort,
	logger out.LoggerPort,
) *CustodyService {
	return custody_service.NewCustodyService(ruleStore, intervalStore, cachePort, idGen, logger)
}
