// Package municipios carries the reference table of Mato Grosso do Sul
// municipalities, keyed by 7-digit IBGE code, with the macro and micro
// health-region assignments the assessment workflows filter by.
package municipios

// Municipio is one municipality entry. Populacao is the 2023 IBGE
// estimate.
type Municipio struct {
	IBGE         string
	Nome         string
	Populacao    int
	Macrorregiao string
	Microrregiao string
}

var all = []Municipio{
	{IBGE: "5000203", Nome: "Água Clara", Populacao: 15821, Macrorregiao: "Campo Grande", Microrregiao: "Cassilândia"},
	{IBGE: "5000252", Nome: "Alcinópolis", Populacao: 4788, Macrorregiao: "Campo Grande", Microrregiao: "Cassilândia"},
	{IBGE: "5000609", Nome: "Amambai", Populacao: 36770, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5000708", Nome: "Anastácio", Populacao: 24892, Macrorregiao: "Campo Grande", Microrregiao: "Aquidauana"},
	{IBGE: "5000807", Nome: "Anaurilândia", Populacao: 9573, Macrorregiao: "Três Lagoas", Microrregiao: "Paranaíba"},
	{IBGE: "5000856", Nome: "Angélica", Populacao: 9558, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5000906", Nome: "Antônio João", Populacao: 8208, Macrorregiao: "Dourados", Microrregiao: "Iguatemi"},
	{IBGE: "5001003", Nome: "Aparecida do Taboado", Populacao: 24566, Macrorregiao: "Três Lagoas", Microrregiao: "Paranaíba"},
	{IBGE: "5001102", Nome: "Aquidauana", Populacao: 48427, Macrorregiao: "Campo Grande", Microrregiao: "Aquidauana"},
	{IBGE: "5001243", Nome: "Aral Moreira", Populacao: 12385, Macrorregiao: "Dourados", Microrregiao: "Iguatemi"},
	{IBGE: "5001508", Nome: "Bandeirantes", Populacao: 6609, Macrorregiao: "Campo Grande", Microrregiao: "Cassilândia"},
	{IBGE: "5001904", Nome: "Bataguassu", Populacao: 22013, Macrorregiao: "Três Lagoas", Microrregiao: "Nova Andradina"},
	{IBGE: "5002001", Nome: "Batayporã", Populacao: 12621, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5002100", Nome: "Bela Vista", Populacao: 25716, Macrorregiao: "Dourados", Microrregiao: "Bodoquena"},
	{IBGE: "5002159", Nome: "Bodoquena", Populacao: 8516, Macrorregiao: "Dourados", Microrregiao: "Bodoquena"},
	{IBGE: "5002209", Nome: "Bonito", Populacao: 22082, Macrorregiao: "Dourados", Microrregiao: "Bodoquena"},
	{IBGE: "5002308", Nome: "Brasilândia", Populacao: 12632, Macrorregiao: "Três Lagoas", Microrregiao: "Nova Andradina"},
	{IBGE: "5002407", Nome: "Caarapó", Populacao: 29716, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5002605", Nome: "Camapuã", Populacao: 15141, Macrorregiao: "Campo Grande", Microrregiao: "Cassilândia"},
	{IBGE: "5002704", Nome: "Campo Grande", Populacao: 906092, Macrorregiao: "Campo Grande", Microrregiao: "Campo Grande"},
	{IBGE: "5002803", Nome: "Caracol", Populacao: 5398, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5002902", Nome: "Cassilândia", Populacao: 20966, Macrorregiao: "Campo Grande", Microrregiao: "Cassilândia"},
	{IBGE: "5002951", Nome: "Chapadão do Sul", Populacao: 25137, Macrorregiao: "Campo Grande", Microrregiao: "Cassilândia"},
	{IBGE: "5003108", Nome: "Corguinho", Populacao: 5288, Macrorregiao: "Campo Grande", Microrregiao: "Campo Grande"},
	{IBGE: "5003157", Nome: "Coronel Sapucaia", Populacao: 16002, Macrorregiao: "Dourados", Microrregiao: "Iguatemi"},
	{IBGE: "5003207", Nome: "Corumbá", Populacao: 114014, Macrorregiao: "Pantanais", Microrregiao: "Baixo Pantanal"},
	{IBGE: "5003256", Nome: "Costa Rica", Populacao: 20563, Macrorregiao: "Campo Grande", Microrregiao: "Cassilândia"},
	{IBGE: "5003306", Nome: "Coxim", Populacao: 33012, Macrorregiao: "Campo Grande", Microrregiao: "Coxim"},
	{IBGE: "5003454", Nome: "Deodápolis", Populacao: 12878, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5003488", Nome: "Dois Irmãos do Buriti", Populacao: 11842, Macrorregiao: "Campo Grande", Microrregiao: "Aquidauana"},
	{IBGE: "5003504", Nome: "Douradina", Populacao: 5160, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5003702", Nome: "Dourados", Populacao: 225495, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5003751", Nome: "Eldorado", Populacao: 12008, Macrorregiao: "Dourados", Microrregiao: "Iguatemi"},
	{IBGE: "5003801", Nome: "Fátima do Sul", Populacao: 21255, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5003900", Nome: "Figueirão", Populacao: 3589, Macrorregiao: "Campo Grande", Microrregiao: "Cassilândia"},
	{IBGE: "5004007", Nome: "Glória de Dourados", Populacao: 10142, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5004106", Nome: "Guia Lopes da Laguna", Populacao: 11689, Macrorregiao: "Dourados", Microrregiao: "Bodoquena"},
	{IBGE: "5004205", Nome: "Iguatemi", Populacao: 15061, Macrorregiao: "Dourados", Microrregiao: "Iguatemi"},
	{IBGE: "5004304", Nome: "Inocência", Populacao: 7697, Macrorregiao: "Três Lagoas", Microrregiao: "Paranaíba"},
	{IBGE: "5004403", Nome: "Itaporã", Populacao: 23632, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5004502", Nome: "Itaquiraí", Populacao: 19644, Macrorregiao: "Dourados", Microrregiao: "Iguatemi"},
	{IBGE: "5004601", Nome: "Ivinhema", Populacao: 23104, Macrorregiao: "Dourados", Microrregiao: "Nova Andradina"},
	{IBGE: "5004700", Nome: "Japorã", Populacao: 8663, Macrorregiao: "Dourados", Microrregiao: "Iguatemi"},
	{IBGE: "5004809", Nome: "Jaraguari", Populacao: 7444, Macrorregiao: "Campo Grande", Microrregiao: "Campo Grande"},
	{IBGE: "5004908", Nome: "Jardim", Populacao: 25547, Macrorregiao: "Dourados", Microrregiao: "Bodoquena"},
	{IBGE: "5005004", Nome: "Jateí", Populacao: 4859, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5005103", Nome: "Juti", Populacao: 6314, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5005152", Nome: "Ladário", Populacao: 25513, Macrorregiao: "Pantanais", Microrregiao: "Baixo Pantanal"},
	{IBGE: "5005202", Nome: "Laguna Carapã", Populacao: 7223, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5005251", Nome: "Maracaju", Populacao: 42463, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5005400", Nome: "Miranda", Populacao: 27596, Macrorregiao: "Campo Grande", Microrregiao: "Aquidauana"},
	{IBGE: "5005608", Nome: "Mundo Novo", Populacao: 18439, Macrorregiao: "Dourados", Microrregiao: "Iguatemi"},
	{IBGE: "5005681", Nome: "Naviraí", Populacao: 55689, Macrorregiao: "Dourados", Microrregiao: "Iguatemi"},
	{IBGE: "5005707", Nome: "Nioaque", Populacao: 15076, Macrorregiao: "Campo Grande", Microrregiao: "Aquidauana"},
	{IBGE: "5005806", Nome: "Nova Alvorada do Sul", Populacao: 18758, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5005905", Nome: "Nova Andradina", Populacao: 50637, Macrorregiao: "Três Lagoas", Microrregiao: "Nova Andradina"},
	{IBGE: "5006002", Nome: "Novo Horizonte do Sul", Populacao: 5008, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5006200", Nome: "Paranaíba", Populacao: 42737, Macrorregiao: "Três Lagoas", Microrregiao: "Paranaíba"},
	{IBGE: "5006259", Nome: "Paranhos", Populacao: 13827, Macrorregiao: "Dourados", Microrregiao: "Iguatemi"},
	{IBGE: "5006275", Nome: "Pedro Gomes", Populacao: 8325, Macrorregiao: "Campo Grande", Microrregiao: "Coxim"},
	{IBGE: "5006309", Nome: "Ponta Porã", Populacao: 93937, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5006358", Nome: "Porto Murtinho", Populacao: 16302, Macrorregiao: "Dourados", Microrregiao: "Baixo Pantanal"},
	{IBGE: "5006408", Nome: "Ribas do Rio Pardo", Populacao: 23551, Macrorregiao: "Campo Grande", Microrregiao: "Campo Grande"},
	{IBGE: "5006606", Nome: "Rio Brilhante", Populacao: 35417, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5006903", Nome: "Rio Negro", Populacao: 5738, Macrorregiao: "Campo Grande", Microrregiao: "Aquidauana"},
	{IBGE: "5006804", Nome: "Rio Verde de Mato Grosso", Populacao: 20689, Macrorregiao: "Campo Grande", Microrregiao: "Coxim"},
	{IBGE: "5007109", Nome: "Rochedo", Populacao: 5285, Macrorregiao: "Campo Grande", Microrregiao: "Campo Grande"},
	{IBGE: "5007208", Nome: "Santa Rita do Pardo", Populacao: 7846, Macrorregiao: "Três Lagoas", Microrregiao: "Nova Andradina"},
	{IBGE: "5007307", Nome: "São Gabriel do Oeste", Populacao: 25090, Macrorregiao: "Campo Grande", Microrregiao: "Coxim"},
	{IBGE: "5007406", Nome: "Sete Quedas", Populacao: 12217, Macrorregiao: "Três Lagoas", Microrregiao: "Nova Andradina"},
	{IBGE: "5007505", Nome: "Selvíria", Populacao: 7053, Macrorregiao: "Três Lagoas", Microrregiao: "Paranaíba"},
	{IBGE: "5007554", Nome: "Sidrolândia", Populacao: 55702, Macrorregiao: "Campo Grande", Microrregiao: "Campo Grande"},
	{IBGE: "5007695", Nome: "Sonora", Populacao: 16276, Macrorregiao: "Campo Grande", Microrregiao: "Coxim"},
	{IBGE: "5007703", Nome: "Tacuru", Populacao: 11889, Macrorregiao: "Dourados", Microrregiao: "Iguatemi"},
	{IBGE: "5007802", Nome: "Taquarussu", Populacao: 3649, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
	{IBGE: "5007901", Nome: "Terenos", Populacao: 20391, Macrorregiao: "Campo Grande", Microrregiao: "Campo Grande"},
	{IBGE: "5008008", Nome: "Três Lagoas", Populacao: 123281, Macrorregiao: "Três Lagoas", Microrregiao: "Três Lagoas"},
	{IBGE: "5008305", Nome: "Vicentina", Populacao: 5906, Macrorregiao: "Dourados", Microrregiao: "Dourados"},
}
