package headhunter

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

const (
	SearchPath  = "/vacancies"
	VacancyPath = "/vacancies/%s"
)

type SearchParams struct {
	Text string `yaml:"text"`
	// hhparam is custom tag for reflect. Please see below.
	Areas          []int    `hhparam:"area"`
	OrderBy        string   `yaml:"order_by" mapstructure:"order_by"`
	SearchField    string   `yaml:"search_field" mapstructure:"search_field"`
	Schedules      []string `hhparam:"schedule"`
	PerPage        string   `yaml:"per_page" mapstructure:"per_page"`
	Experience     string   `yaml:"experience"`
	Period         uint     `yaml:"period"`
	Salary         uint     `yaml:"salary"`
	Currency       string   `yaml:"currency"`
	OnlyWithSalary bool     `yaml:"only_with_salary" mapstructure:"only_with_salary"`
	// Pages limits how many result pages are fetched. It is not sent to hh.ru.
	Pages int `hhparam:"-" yaml:"pages"`
}

func (c *Client) search(params *SearchParams) (*Vacancies, error) {
	var vacancies []*Vacancy

	// Set per_page max as possible. It should be faster.
	if params.PerPage == "" {
		params.PerPage = perPage
	}

	q := buildParams(params)
	apiURLSearch := fmt.Sprintf("%s%s", c.APIURL, SearchPath)

	items, found, err := c.GetItems(apiURLSearch, q, params.Pages)
	if err != nil {
		return nil, err
	}

	if err := decode(items, &vacancies); err != nil {
		return nil, fmt.Errorf("decoding vacancies: %w", err)
	}

	return &Vacancies{
		Items: vacancies,
		Found: found,
	}, nil
}

func (c *Client) getVacancy(id string) (*Vacancy, error) {
	var raw map[string]any
	if err := c.getJSON(fmt.Sprintf("%s"+VacancyPath, c.APIURL, url.PathEscape(id)), nil, &raw); err != nil {
		return nil, fmt.Errorf("getting vacancy %s: %w", id, err)
	}

	var vacancy Vacancy
	if err := decode(raw, &vacancy); err != nil {
		return nil, fmt.Errorf("decoding vacancy %s: %w", id, err)
	}

	return &vacancy, nil
}

func decode(input, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func buildParams(params *SearchParams) url.Values {
	q := url.Values{}
	fields := reflect.VisibleFields(reflect.TypeOf(*params))
	for _, field := range fields {
		// Our custom tag is using here.
		key := field.Tag.Get("hhparam")
		if key == "-" {
			continue
		}
		if key == "" {
			// Failover to default tag if our tag do not exist.
			key = field.Tag.Get("yaml")
		}
		kind := field.Type.Kind()
		switch kind {
		case reflect.Slice:

			s := reflect.ValueOf(params).Elem().Field(field.Index[0]).Interface()
			switch v := s.(type) {
			case []int:
				for _, value := range v {
					q.Add(key, strconv.Itoa(value))
				}

			case []string:
				for _, value := range v {
					q.Add(key, value)
				}
			}

		default:
			value := fmt.Sprintf("%v", reflect.ValueOf(params).Elem().Field(field.Index[0]).Interface())
			if value != "" && value != "0" && value != "false" {
				q.Set(key, value)
			}
		}
	}

	return q
}
