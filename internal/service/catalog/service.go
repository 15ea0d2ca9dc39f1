package catalog

// Service сервис справочников: услуги, специалисты, клиенты, товары, способы оплаты
type Service struct {
	offeringRepo     OfferingRepository
	professionalRepo ProfessionalRepository
	catalogRepo      CatalogRepository
	txManager        TransactionManager
	boxes            []string
	logger           Logger
}

// NewService создает новый экземпляр сервиса справочников
// boxes - сконфигурированные боксы, в которых допустимы окна услуг
func NewService(
	offeringRepo OfferingRepository,
	professionalRepo ProfessionalRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	boxes []string,
	logger Logger,
) *Service {
	return &Service{
		offeringRepo:     offeringRepo,
		professionalRepo: professionalRepo,
		catalogRepo:      catalogRepo,
		txManager:        txManager,
		boxes:            boxes,
		logger:           logger,
	}
}

func (s *Service) hasBox(box string) bool {
	for _, b := range s.boxes {
		if b == box {
			return true
		}
	}
	return false
}
